// Package services contains server-side business logic. This file implements
// DeleteConfigService, the <delete-config> operation: wiping every writable
// module of the startup datastore in one batch, or validating the document
// at a url target.
package services

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/dmitrijs2005/netconfd/internal/common"
	"github.com/dmitrijs2005/netconfd/internal/logging"
	"github.com/dmitrijs2005/netconfd/internal/server/acl"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"github.com/dmitrijs2005/netconfd/internal/server/urlimport"
)

// Session is the part of a protocol session the operation drives.
type Session interface {
	User() string
	Datastore() models.Datastore
	Revision() int64
	SwitchDatastore(ctx context.Context, ds models.Datastore) error
	Refresh(ctx context.Context) error
	DeleteItem(ctx context.Context, xpath string) error
	Commit(ctx context.Context) error
	DiscardChanges(ctx context.Context) error
}

type AccessChecker interface {
	CheckExec(ctx context.Context, user string, rpcPath string) error
}

// ModuleSource yields the loaded modules in catalog order.
type ModuleSource interface {
	Modules() iter.Seq[models.ModuleDescriptor]
}

type Importer interface {
	Import(ctx context.Context, locator string) (urlimport.Document, error)
}

// Recorder observes finished operations.
type Recorder interface {
	ObserveDeleteConfig(target, result string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveDeleteConfig(string, string, time.Duration) {}

// DeleteConfigService executes <delete-config> requests.
type DeleteConfigService struct {
	acl        AccessChecker
	modules    ModuleSource
	importer   Importer
	urlEnabled bool
	recorder   Recorder
	logger     logging.Logger
}

// NewDeleteConfigService wires the operation. importer may be nil when
// urlEnabled is false; a nil recorder disables metrics.
func NewDeleteConfigService(checker AccessChecker, modules ModuleSource, importer Importer, urlEnabled bool, recorder Recorder, l logging.Logger) *DeleteConfigService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &DeleteConfigService{
		acl:        checker,
		modules:    modules,
		importer:   importer,
		urlEnabled: urlEnabled && importer != nil,
		recorder:   recorder,
		logger:     l.With("module", "delete-config"),
	}
}

// DeleteConfig runs one request on behalf of sess. The caller must hold the
// session exclusively for the duration of the call. A nil error is the Ok
// reply; protocol failures are *common.RPCError.
func (s *DeleteConfigService) DeleteConfig(ctx context.Context, sess Session, req models.DeleteConfigRequest) (err error) {
	start := time.Now()
	defer func() {
		s.recorder.ObserveDeleteConfig(targetLabel(req), resultLabel(err), time.Since(start))
	}()

	if err := s.acl.CheckExec(ctx, sess.User(), acl.PathDeleteConfig); err != nil {
		if !errors.Is(err, common.ErrorPermissionDenied) {
			s.logger.Error(ctx, "access check failed", "user", sess.User(), "error", err)
		}
		return common.NewRPCError(common.KindPermissionDenied, common.MsgAccessDenied, err)
	}

	target, err := ResolveTarget(req, s.urlEnabled)
	if err != nil {
		return err
	}

	if target.Kind == models.TargetExternalResource {
		return s.checkResource(ctx, target.Locator)
	}
	return s.wipe(ctx, sess, target.Datastore)
}

// checkResource fetches and validates the document at locator. The
// document is dropped afterwards; nothing is written anywhere.
func (s *DeleteConfigService) checkResource(ctx context.Context, locator string) error {
	doc, err := s.importer.Import(ctx, locator)
	if err != nil {
		s.logger.Warn(ctx, "url import failed", "url", locator, "error", err)
		return common.NewRPCError(common.KindResourceImportError, common.MsgInvalidURLConfig, err)
	}
	s.logger.Info(ctx, "url config validated", "url", locator, "members", len(doc))
	return nil
}

func (s *DeleteConfigService) wipe(ctx context.Context, sess Session, ds models.Datastore) error {
	if sess.Datastore() != ds {
		if err := sess.SwitchDatastore(ctx, ds); err != nil {
			return common.NewRPCError(common.KindSessionSwitchError, common.MsgSwitchDatastore, err)
		}
	}

	if err := sess.Refresh(ctx); err != nil {
		s.discard(ctx, sess)
		return common.NewRPCError(common.KindRefreshError, common.MsgRefreshDatastore, err)
	}

	deleted := 0
	for m := range s.modules.Modules() {
		if !m.HasWritableData {
			continue
		}
		if err := sess.DeleteItem(ctx, m.WildcardPath()); err != nil {
			s.logger.Error(ctx, "module delete failed", "datastore", ds, "module", m.Name, "error", err)
			s.discard(ctx, sess)
			return common.NewRPCError(common.KindDeleteError, common.MsgDeleteConfigData, err)
		}
		deleted++
	}

	if err := sess.Commit(ctx); err != nil {
		s.logger.Error(ctx, "commit failed", "datastore", ds, "error", err)
		s.discard(ctx, sess)
		return common.NewRPCError(common.KindCommitError, common.MsgCommitConfigChange, err)
	}

	s.logger.Info(ctx, "datastore wiped", "datastore", ds, "modules", deleted, "revision", sess.Revision(), "user", sess.User())
	return nil
}

// discard rolls the batch back. Its failure never replaces the error that
// caused it.
func (s *DeleteConfigService) discard(ctx context.Context, sess Session) {
	if err := sess.DiscardChanges(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn(ctx, "discard failed", "error", err)
	}
}

func targetLabel(req models.DeleteConfigRequest) string {
	switch req.Target.Branch {
	case models.BranchStartup, models.BranchURL:
		return req.Target.Branch
	default:
		return "other"
	}
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if rpcErr, ok := common.AsRPCError(err); ok {
		return string(rpcErr.Kind)
	}
	return "internal"
}

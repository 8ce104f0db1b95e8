package server

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/netconfd/internal/logging"
	"github.com/dmitrijs2005/netconfd/internal/server/config"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"github.com/dmitrijs2005/netconfd/internal/server/repositories/repomanager"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct {
	*repomanager.PostgresRepositoryManager
	migrateErr error
	migrated   bool
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	f.migrated = true
	return f.migrateErr
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.MetricsAddr = ""
	return c
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestNewApp_WiresServices(t *testing.T) {
	db, mock := newMock(t)
	rm := &fakeRepoManager{PostgresRepositoryManager: repomanager.NewPostgresRepositoryManager()}

	c := testConfig()
	c.URLCapability = true
	c.ExecRules = []models.ExecRule{{UserName: "guest", RPCPath: "/ietf-netconf:delete-config", Action: models.ActionDeny}}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT\s+INTO\s+nacm_rules`).
		WithArgs("guest", "/ietf-netconf:delete-config", "deny").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app, err := newApp(context.Background(), c, db, rm, logging.Nop{})
	require.NoError(t, err)
	assert.True(t, rm.migrated)
	assert.NotNil(t, app.sessions)
	assert.NotNil(t, app.deleteConfig)
	assert.NotNil(t, app.metrics)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_MigrationError(t *testing.T) {
	db, _ := newMock(t)
	rm := &fakeRepoManager{
		PostgresRepositoryManager: repomanager.NewPostgresRepositoryManager(),
		migrateErr:                errors.New("relation exists"),
	}

	_, err := newApp(context.Background(), testConfig(), db, rm, logging.Nop{})
	require.ErrorContains(t, err, "migrations error")
}

func TestNewApp_CatalogError(t *testing.T) {
	db, _ := newMock(t)
	rm := &fakeRepoManager{PostgresRepositoryManager: repomanager.NewPostgresRepositoryManager()}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modules: ["), 0o600))
	c := testConfig()
	c.CatalogFile = path

	_, err := newApp(context.Background(), c, db, rm, logging.Nop{})
	require.ErrorContains(t, err, "catalog error")
}

func TestNewApp_SeedError(t *testing.T) {
	db, mock := newMock(t)
	rm := &fakeRepoManager{PostgresRepositoryManager: repomanager.NewPostgresRepositoryManager()}

	c := testConfig()
	c.ExecRules = []models.ExecRule{{UserName: "guest", RPCPath: "/x", Action: models.ActionDeny}}
	mock.ExpectBegin().WillReturnError(errors.New("no tx"))

	_, err := newApp(context.Background(), c, db, rm, logging.Nop{})
	require.ErrorContains(t, err, "exec rules error")
}

func TestNewApp_OpenError(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })
	sqlOpen = func(driverName, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driverName)
		return nil, errors.New("bad dsn")
	}

	_, err := NewApp(context.Background(), testConfig())
	require.ErrorContains(t, err, "db init error")
}

func TestRun_StopsOnCancelAndClosesDB(t *testing.T) {
	db, mock := newMock(t)
	rm := &fakeRepoManager{PostgresRepositoryManager: repomanager.NewPostgresRepositoryManager()}

	c := testConfig()
	c.EndpointAddrGRPC = "127.0.0.1:0"

	app, err := newApp(context.Background(), c, db, rm, logging.Nop{})
	require.NoError(t, err)

	mock.ExpectClose()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app.Run(ctx)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_SessionsGaugeFollowsManager(t *testing.T) {
	db, mock := newMock(t)
	rm := &fakeRepoManager{PostgresRepositoryManager: repomanager.NewPostgresRepositoryManager()}
	ctx := context.Background()

	app, err := newApp(ctx, testConfig(), db, rm, logging.Nop{})
	require.NoError(t, err)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT\s+revision\s+FROM\s+datastores`).WillReturnRows(sqlmock.NewRows([]string{"revision"}).AddRow(1))
	mock.ExpectQuery(`SELECT\s+revision\s+FROM\s+datastores`).WillReturnRows(sqlmock.NewRows([]string{"revision"}).AddRow(1))

	s, err := app.sessions.Open(ctx, "alice")
	require.NoError(t, err)
	_, err = app.sessions.Open(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 2.0, testutil.ToFloat64(app.metrics.SessionsOpen))

	require.NoError(t, app.sessions.Close(ctx, s.ID()))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.metrics.SessionsOpen))

	app.shutdown(ctx)
	assert.Equal(t, 0.0, testutil.ToFloat64(app.metrics.SessionsOpen))
}

func TestReapInterval(t *testing.T) {
	assert.Equal(t, 150*time.Second, reapInterval(10*time.Minute))
	assert.Equal(t, time.Second, reapInterval(2*time.Second))
}

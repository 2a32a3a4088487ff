package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/enpl/fieldops-console/internal/config"
	"github.com/enpl/fieldops-console/internal/domain"
	"github.com/enpl/fieldops-console/internal/events"
	apperrors "github.com/enpl/fieldops-console/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            bcrypt.MinCost,
			BootstrapUsername:     "admin",
		},
	}
}

type userServiceFixture struct {
	svc        *UserService
	repo       *fakeUserRepo
	cache      *memoryScopeCache
	dispatcher *recordingDispatcher
}

func newUserServiceFixture() userServiceFixture {
	repo := newFakeUserRepo()
	cache := newMemoryScopeCache()
	dispatcher := &recordingDispatcher{}
	return userServiceFixture{
		svc:        NewUserService(testConfig(), repo, cache, dispatcher),
		repo:       repo,
		cache:      cache,
		dispatcher: dispatcher,
	}
}

func seedAccount(t *testing.T, repo *fakeUserRepo, username string, role domain.Role, managerID, adminID *int64) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		ManagerID:    managerID,
		AdminID:      adminID,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func requireDomainCode(t *testing.T, err error, code string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}

func TestRegisterDuplicateUsername(t *testing.T) {
	fx := newUserServiceFixture()
	ctx := context.Background()

	_, err := fx.svc.Register(ctx, RegisterInput{Username: "ravi", Password: "pw", Role: domain.RoleManager})
	require.NoError(t, err)

	_, err = fx.svc.Register(ctx, RegisterInput{Username: "ravi", Password: "other", Role: domain.RoleManager})
	domainErr := requireDomainCode(t, err, "CONFLICT")
	assert.Equal(t, "Username already exists", domainErr.Message)
}

func TestRegisterExecutiveRequiresManager(t *testing.T) {
	fx := newUserServiceFixture()

	_, err := fx.svc.Register(context.Background(), RegisterInput{
		Username: "exec1",
		Password: "pw",
		Role:     domain.RoleExecutive,
	})
	domainErr := requireDomainCode(t, err, "VALIDATION_FAILED")
	assert.Equal(t, "managerId is required for EXECUTIVE user type", domainErr.Message)
}

func TestRegisterExecutiveUnderManager(t *testing.T) {
	fx := newUserServiceFixture()
	ctx := context.Background()

	manager := seedAccount(t, fx.repo, "mgr", domain.RoleManager, nil, nil)

	exec, err := fx.svc.Register(ctx, RegisterInput{
		Username:  "exec1",
		Password:  "pw",
		Role:      domain.RoleExecutive,
		ManagerID: &manager.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, exec.ManagerID)
	assert.Equal(t, manager.ID, *exec.ManagerID)
	assert.NotEqual(t, "pw", exec.PasswordHash)

	created := fx.dispatcher.published(events.EventAccountCreated)
	require.Len(t, created, 1)
	payload, ok := created[0].Payload.(events.AccountPayload)
	require.True(t, ok)
	assert.Equal(t, "exec1", payload.Username)
}

func TestRegisterRejectsNonManagerReference(t *testing.T) {
	fx := newUserServiceFixture()
	ctx := context.Background()

	notAManager := seedAccount(t, fx.repo, "exec0", domain.RoleExecutive, nil, nil)

	_, err := fx.svc.Register(ctx, RegisterInput{
		Username:  "exec1",
		Password:  "pw",
		Role:      domain.RoleExecutive,
		ManagerID: &notAManager.ID,
	})
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestRegisterInvalidatesScopeCache(t *testing.T) {
	fx := newUserServiceFixture()

	_, err := fx.svc.Register(context.Background(), RegisterInput{
		Username: "mgr",
		Password: "pw",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fx.cache.invalidated)
}

func TestUpdateNotFound(t *testing.T) {
	fx := newUserServiceFixture()

	_, err := fx.svc.Update(context.Background(), 42, UpdateInput{Username: ptr("nobody")})
	domainErr := requireDomainCode(t, err, "NOT_FOUND")
	assert.Equal(t, "User with ID 42 not found", domainErr.Message)
}

func TestUpdateRejectsSelfManager(t *testing.T) {
	fx := newUserServiceFixture()
	ctx := context.Background()

	manager := seedAccount(t, fx.repo, "mgr", domain.RoleManager, nil, nil)

	_, err := fx.svc.Update(ctx, manager.ID, UpdateInput{ManagerID: &manager.ID})
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestUpdateRehashesPassword(t *testing.T) {
	fx := newUserServiceFixture()
	ctx := context.Background()

	account := seedAccount(t, fx.repo, "mgr", domain.RoleManager, nil, nil)

	updated, err := fx.svc.Update(ctx, account.ID, UpdateInput{Password: ptr("new-secret")})
	require.NoError(t, err)
	assert.NotEqual(t, "new-secret", updated.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-secret")))
}

func TestDeleteBlockedBySubordinates(t *testing.T) {
	fx := newUserServiceFixture()
	ctx := context.Background()

	manager := seedAccount(t, fx.repo, "mgr", domain.RoleManager, nil, nil)
	exec := seedAccount(t, fx.repo, "exec1", domain.RoleExecutive, &manager.ID, nil)

	err := fx.svc.Delete(ctx, manager.ID)
	domainErr := requireDomainCode(t, err, "CONFLICT")
	assert.Equal(t, "has associated users", domainErr.Message)

	require.NoError(t, fx.svc.Delete(ctx, exec.ID))
	require.NoError(t, fx.svc.Delete(ctx, manager.ID))

	_, err = fx.svc.Get(ctx, manager.ID)
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestDeleteBootstrapAccountForbidden(t *testing.T) {
	fx := newUserServiceFixture()

	bootstrap := seedAccount(t, fx.repo, "admin", domain.RoleSuperadmin, nil, nil)

	err := fx.svc.Delete(context.Background(), bootstrap.ID)
	requireDomainCode(t, err, "FORBIDDEN")
}

func TestScopeForHierarchy(t *testing.T) {
	fx := newUserServiceFixture()
	ctx := context.Background()

	super := seedAccount(t, fx.repo, "root", domain.RoleSuperadmin, nil, nil)
	adminA := seedAccount(t, fx.repo, "adminA", domain.RoleAdmin, nil, nil)
	adminB := seedAccount(t, fx.repo, "adminB", domain.RoleAdmin, nil, nil)
	mgrA := seedAccount(t, fx.repo, "mgrA", domain.RoleManager, nil, &adminA.ID)
	execA := seedAccount(t, fx.repo, "execA", domain.RoleExecutive, &mgrA.ID, &adminA.ID)
	mgrB := seedAccount(t, fx.repo, "mgrB", domain.RoleManager, nil, &adminB.ID)

	all, err := fx.svc.ScopeFor(ctx, super.ID, domain.RoleSuperadmin)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	scopeA, err := fx.svc.ScopeFor(ctx, adminA.ID, domain.RoleAdmin)
	require.NoError(t, err)
	usernames := []string{}
	for _, u := range scopeA {
		usernames = append(usernames, u.Username)
	}
	assert.ElementsMatch(t, []string{"mgrA", "execA"}, usernames)

	execs, err := fx.svc.ScopeFor(ctx, mgrA.ID, domain.RoleManager)
	require.NoError(t, err)
	require.Len(t, execs, 1)
	assert.Equal(t, "execA", execs[0].Username)

	self, err := fx.svc.ScopeFor(ctx, execA.ID, domain.RoleExecutive)
	require.NoError(t, err)
	require.Len(t, self, 1)
	assert.Equal(t, execA.ID, self[0].ID)

	scopeB, err := fx.svc.ScopeFor(ctx, adminB.ID, domain.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, scopeB, 1)
	assert.Equal(t, mgrB.ID, scopeB[0].ID)
}

func TestScopeForUnknownRole(t *testing.T) {
	fx := newUserServiceFixture()

	_, err := fx.svc.ScopeFor(context.Background(), 1, domain.Role("INTERN"))
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestListManagersForAdminUsesCache(t *testing.T) {
	fx := newUserServiceFixture()
	ctx := context.Background()

	admin := seedAccount(t, fx.repo, "adminA", domain.RoleAdmin, nil, nil)
	seedAccount(t, fx.repo, "mgrA", domain.RoleManager, nil, &admin.ID)

	first, err := fx.svc.ListManagersForAdmin(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 0, fx.cache.hits)

	second, err := fx.svc.ListManagersForAdmin(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, fx.cache.hits)

	// A write drops the cached listing.
	_, err = fx.svc.Register(ctx, RegisterInput{Username: "mgrA2", Password: "pw", Role: domain.RoleManager, AdminID: &admin.ID})
	require.NoError(t, err)

	third, err := fx.svc.ListManagersForAdmin(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

func TestListExecutivesForManager(t *testing.T) {
	fx := newUserServiceFixture()
	ctx := context.Background()

	mgr := seedAccount(t, fx.repo, "mgr", domain.RoleManager, nil, nil)
	other := seedAccount(t, fx.repo, "mgr2", domain.RoleManager, nil, nil)
	seedAccount(t, fx.repo, "exec1", domain.RoleExecutive, &mgr.ID, nil)
	seedAccount(t, fx.repo, "exec2", domain.RoleExecutive, &mgr.ID, nil)
	seedAccount(t, fx.repo, "exec3", domain.RoleExecutive, &other.ID, nil)

	execs, err := fx.svc.ListExecutivesForManager(ctx, mgr.ID)
	require.NoError(t, err)
	assert.Len(t, execs, 2)
}

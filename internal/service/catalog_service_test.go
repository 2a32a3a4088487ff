package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture() (*CatalogService, *fakeServiceRepo) {
	repo := newFakeServiceRepo()
	return NewCatalogService(repo, newFakeSequenceRepo()), repo
}

func TestCatalogCreateAssignsSequentialBusinessIDs(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, ServiceInput{ServiceName: ptr("CCTV AMC"), Description: ptr("Annual maintenance")})
	require.NoError(t, err)
	assert.Equal(t, "ENPL-SR-01", first.ServiceID)

	second, err := svc.Create(ctx, ServiceInput{ServiceName: ptr("Firewall Install"), Description: ptr("New installation")})
	require.NoError(t, err)
	assert.Equal(t, "ENPL-SR-02", second.ServiceID)
}

func TestCatalogCreateRequiresFields(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, ServiceInput{Description: ptr("missing name")})
	requireDomainCode(t, err, "VALIDATION_FAILED")

	_, err = svc.Create(ctx, ServiceInput{ServiceName: ptr("CCTV AMC")})
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestCatalogUpdateKeepsBusinessID(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, ServiceInput{ServiceName: ptr("CCTV AMC"), Description: ptr("Annual maintenance")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, ServiceInput{Description: ptr("Quarterly visits included")})
	require.NoError(t, err)
	assert.Equal(t, created.ServiceID, updated.ServiceID)
	assert.Equal(t, "CCTV AMC", updated.ServiceName)
	assert.Equal(t, "Quarterly visits included", updated.Description)
}

func TestCatalogGetNotFound(t *testing.T) {
	svc, _ := newCatalogFixture()

	_, err := svc.Get(context.Background(), 7)
	domainErr := requireDomainCode(t, err, "NOT_FOUND")
	assert.Equal(t, "Service with ID 7 not found", domainErr.Message)
}

func TestCatalogDelete(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, ServiceInput{ServiceName: ptr("CCTV AMC"), Description: ptr("Annual maintenance")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	requireDomainCode(t, err, "NOT_FOUND")
}

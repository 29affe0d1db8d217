package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/adapters/storage"
	"leadtrack_backend/internal/organization/repository"
	"leadtrack_backend/internal/organization/transport"
	"leadtrack_backend/internal/rbac"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
	"leadtrack_backend/platform/validator"
)

type fakeRepo struct {
	orgs map[uuid.UUID]repository.Organization
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orgs: make(map[uuid.UUID]repository.Organization)}
}

func (f *fakeRepo) add(reviewURL *string) repository.Organization {
	o := repository.Organization{ID: uuid.New(), Name: "Showroom", GoogleReviewURL: reviewURL, CreatedAt: time.Now()}
	f.orgs[o.ID] = o
	return o
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Organization, error) {
	o, ok := f.orgs[id]
	if !ok {
		return repository.Organization{}, repository.ErrNotFound
	}
	return o, nil
}

func (f *fakeRepo) UpdateProfile(_ context.Context, id uuid.UUID, name string, reviewURL *string) (repository.Organization, error) {
	o, ok := f.orgs[id]
	if !ok {
		return repository.Organization{}, repository.ErrNotFound
	}
	o.Name = name
	o.GoogleReviewURL = reviewURL
	f.orgs[id] = o
	return o, nil
}

func (f *fakeRepo) SetReviewQRKey(_ context.Context, id uuid.UUID, fileKey string) (repository.Organization, error) {
	o, ok := f.orgs[id]
	if !ok {
		return repository.Organization{}, repository.ErrNotFound
	}
	o.ReviewQRKey = &fileKey
	f.orgs[id] = o
	return o, nil
}

type fakeStorage struct {
	uploads map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (f *fakeStorage) UploadFile(_ context.Context, _, folder, fileName, _ string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	key := folder + "/" + fileName
	f.uploads[key] = data
	return key, nil
}

func (f *fakeStorage) GenerateDownloadURL(_ context.Context, bucket, fileKey string) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{
		URL:       "https://storage.example/" + bucket + "/" + fileKey,
		FileKey:   fileKey,
		ExpiresAt: time.Now().Add(storage.PresignedURLTTL),
	}, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, _, _ string) error      { return nil }
func (f *fakeStorage) EnsureBucketExists(_ context.Context, _ string) error   { return nil }

func TestGenerateReviewQRRequiresReviewURL(t *testing.T) {
	repo := newFakeRepo()
	org := repo.add(nil)
	svc := NewService(repo, newFakeStorage(), "review-qr", validator.New())
	actor := httpkit.NewIdentity(uuid.New(), rbac.RoleManager.String(), org.ID)

	_, err := svc.GenerateReviewQR(context.Background(), actor)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error without review URL, got %v", err)
	}
}

func TestGenerateReviewQRUploadsAndRecordsKey(t *testing.T) {
	repo := newFakeRepo()
	url := "https://g.page/r/example-review"
	org := repo.add(&url)
	store := newFakeStorage()
	svc := NewService(repo, store, "review-qr", validator.New())
	actor := httpkit.NewIdentity(uuid.New(), rbac.RoleManager.String(), org.ID)

	resp, err := svc.GenerateReviewQR(context.Background(), actor)
	if err != nil {
		t.Fatalf("GenerateReviewQR() error = %v", err)
	}
	if !resp.HasReviewQR {
		t.Error("response must report a stored QR")
	}
	if len(store.uploads) != 1 {
		t.Fatalf("uploaded %d objects, want 1", len(store.uploads))
	}
	for _, data := range store.uploads {
		if len(data) == 0 {
			t.Error("uploaded QR image is empty")
		}
	}

	link, err := svc.ReviewQRLink(context.Background(), actor)
	if err != nil {
		t.Fatalf("ReviewQRLink() error = %v", err)
	}
	if link.URL == "" {
		t.Error("presigned URL must not be empty")
	}
}

func TestGenerateReviewQRRequiresManager(t *testing.T) {
	repo := newFakeRepo()
	url := "https://g.page/r/example-review"
	org := repo.add(&url)
	svc := NewService(repo, newFakeStorage(), "review-qr", validator.New())

	staff := httpkit.NewIdentity(uuid.New(), rbac.RoleStaff.String(), org.ID)
	if _, err := svc.GenerateReviewQR(context.Background(), staff); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for staff, got %v", err)
	}
}

func TestReviewQRLinkWithoutQRNotFound(t *testing.T) {
	repo := newFakeRepo()
	org := repo.add(nil)
	svc := NewService(repo, newFakeStorage(), "review-qr", validator.New())
	actor := httpkit.NewIdentity(uuid.New(), rbac.RoleStaff.String(), org.ID)

	_, err := svc.ReviewQRLink(context.Background(), actor)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found without a generated QR, got %v", err)
	}
}

func TestUpdateProfileValidatesURL(t *testing.T) {
	repo := newFakeRepo()
	org := repo.add(nil)
	svc := NewService(repo, newFakeStorage(), "review-qr", validator.New())
	actor := httpkit.NewIdentity(uuid.New(), rbac.RoleManager.String(), org.ID)

	bad := "not-a-url"
	_, err := svc.UpdateProfile(context.Background(), actor, transport.UpdateProfileRequest{
		Name:            "Showroom",
		GoogleReviewURL: &bad,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for malformed URL, got %v", err)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/arzan03/lingo/internal/apperr"
	"github.com/arzan03/lingo/internal/models"
	"github.com/arzan03/lingo/internal/repository"
	"github.com/google/uuid"
)

const (
	profileUploadExpiry   = 15 * time.Minute
	profileDownloadExpiry = time.Hour

	profileObjectPrefix = "profiles/"
)

// ObjectStore issues time-limited URLs for object storage and reports
// whether an uploaded object has arrived.
type ObjectStore interface {
	PresignUpload(ctx context.Context, object string, expiry time.Duration) (*url.URL, error)
	PresignDownload(ctx context.Context, object string, expiry time.Duration) (*url.URL, error)
	ObjectExists(ctx context.Context, object string) (bool, error)
}

type ProfileImage struct {
	URL       string `json:"url"`
	ExpiresIn string `json:"expires_in,omitempty"`
}

type ProfileImageUpload struct {
	UploadURL string `json:"upload_url"`
	Photo     string `json:"photo"`
	ExpiresIn string `json:"expires_in"`
}

// ProfileImageService hands out upload slots for user profile images. The
// user's photo only switches to a new object once ConfirmUpload sees it in
// storage.
type ProfileImageService struct {
	users   repository.UserRepository
	objects ObjectStore
}

// NewProfileImageService accepts a nil store; uploads then report the
// feature as unavailable.
func NewProfileImageService(users repository.UserRepository, objects ObjectStore) *ProfileImageService {
	return &ProfileImageService{users: users, objects: objects}
}

func errUploadsDisabled() error {
	return apperr.Unavailable("Profile image uploads are not configured")
}

func userObjectPrefix(user *models.User) string {
	return profileObjectPrefix + user.ID.Hex() + "/"
}

// NewUpload reserves an object key and presigns a PUT for it. The stored
// photo is left untouched.
func (s *ProfileImageService) NewUpload(ctx context.Context, user *models.User) (*ProfileImageUpload, error) {
	if s.objects == nil {
		return nil, errUploadsDisabled()
	}

	object := userObjectPrefix(user) + uuid.NewString()
	u, err := s.objects.PresignUpload(ctx, object, profileUploadExpiry)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("presign profile upload: %w", err))
	}

	return &ProfileImageUpload{
		UploadURL: u.String(),
		Photo:     object,
		ExpiresIn: profileUploadExpiry.String(),
	}, nil
}

// ConfirmUpload makes object the user's photo once it exists in storage.
// Objects outside the user's own prefix are rejected.
func (s *ProfileImageService) ConfirmUpload(ctx context.Context, user *models.User, object string) (*models.User, error) {
	if s.objects == nil {
		return nil, errUploadsDisabled()
	}

	object = strings.TrimSpace(object)
	name, ok := strings.CutPrefix(object, userObjectPrefix(user))
	if !ok || name == "" || strings.Contains(name, "/") {
		return nil, photoError("Must be an upload issued to this user")
	}

	exists, err := s.objects.ObjectExists(ctx, object)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("stat profile image: %w", err))
	}
	if !exists {
		return nil, photoError("Image has not been uploaded")
	}

	if err := s.users.SetPhoto(ctx, user.Email, object); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Internal(err)
	}

	updated := *user
	updated.Photo = object
	return &updated, nil
}

func photoError(msg string) error {
	return apperr.ValidationError("Invalid request", apperr.FieldError{Field: "photo", Message: msg})
}

// PhotoURL resolves the user's photo. Uploaded images get a presigned GET;
// an external link given at registration is returned as is.
func (s *ProfileImageService) PhotoURL(ctx context.Context, user *models.User) (*ProfileImage, error) {
	if user.Photo == "" {
		return nil, apperr.NotFound("Profile image")
	}
	if !strings.HasPrefix(user.Photo, profileObjectPrefix) {
		return &ProfileImage{URL: user.Photo}, nil
	}
	if s.objects == nil {
		return nil, errUploadsDisabled()
	}

	u, err := s.objects.PresignDownload(ctx, user.Photo, profileDownloadExpiry)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("presign profile download: %w", err))
	}
	return &ProfileImage{URL: u.String(), ExpiresIn: profileDownloadExpiry.String()}, nil
}

// Package catalog owns the in-memory list of plumbing families and wires
// user actions to the record store and the object store.
package catalog

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"plumbfam/internal/policy"
	"plumbfam/internal/storage"
	"plumbfam/pkg/types"

	"github.com/sirupsen/logrus"
)

// FamilyStore is the record-side collaborator, satisfied by
// store.FamilyRepository.
type FamilyStore interface {
	AllFamilies(ctx context.Context) ([]*types.Family, error)
	FamilyByID(ctx context.Context, familyID string) (*types.Family, error)
	CreateFamily(ctx context.Context, family *types.Family) error
	DeleteFamily(ctx context.Context, familyID string) error
}

// Subscriber hands out change-event subscriptions, satisfied by
// store.Listener.
type Subscriber interface {
	Subscribe() (<-chan types.ChangeEvent, func())
}

// ValidationError reports a rejected submission. Nothing has been sent to
// the record or object store when one is returned.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

type Controller struct {
	store  FamilyStore
	blobs  storage.ObjectStore
	policy policy.AccessPolicy
	logger *logrus.Logger

	imageBucket string
	rvtBucket   string

	mu       sync.RWMutex
	families []*types.Family
}

func NewController(
	store FamilyStore,
	blobs storage.ObjectStore,
	accessPolicy policy.AccessPolicy,
	logger *logrus.Logger,
	imageBucket string,
	rvtBucket string,
) *Controller {
	return &Controller{
		store:       store,
		blobs:       blobs,
		policy:      accessPolicy,
		logger:      logger,
		imageBucket: imageBucket,
		rvtBucket:   rvtBucket,
	}
}

// Run performs the initial fetch and then refetches on every change event
// until ctx is done. Events carry no ordering guarantee relative to local
// actions, so each one is treated as "state may have changed" and answered
// with a full refetch.
func (c *Controller) Run(ctx context.Context, sub Subscriber) {
	if err := c.Refresh(ctx); err != nil {
		c.logger.WithError(err).Error("initial family fetch failed")
	}

	events, cancel := sub.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := c.Refresh(ctx); err != nil {
				c.logger.WithError(err).WithFields(logrus.Fields{
					"op": event.Op,
					"id": event.ID,
				}).Error("refetch after change event failed")
			}
		}
	}
}

// Refresh refetches all records ordered by creation time descending and
// swaps the in-memory snapshot.
func (c *Controller) Refresh(ctx context.Context) error {
	families, err := c.store.AllFamilies(ctx)
	if err != nil {
		return fmt.Errorf("refresh families: %w", err)
	}

	c.mu.Lock()
	c.families = families
	c.mu.Unlock()

	return nil
}

// Families returns a snapshot of the visible list for the given category:
// every record for the "all" pseudo-category, otherwise the exact-match
// subset. Records carrying an unrecognized category only appear under
// "all".
func (c *Controller) Families(category types.Category) []*types.Family {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*types.Family, 0, len(c.families))
	for _, family := range c.families {
		if category == types.CategoryAll || family.Category == category {
			out = append(out, family)
		}
	}
	return out
}

// FileUpload is one submitted file.
type FileUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// UploadRequest carries the upload form's fields.
type UploadRequest struct {
	FamilyName string
	Category   types.Category
	Rating     float64
	Credential string
	Image      *FileUpload
	RvtFile    *FileUpload
}

// Upload validates the request, uploads the image then the design file,
// and inserts one record referencing the two public URLs. The first
// failure aborts the remaining steps and surfaces its message; blobs
// uploaded before the failure are left orphaned (no compensating
// rollback).
func (c *Controller) Upload(ctx context.Context, req UploadRequest) (*types.Family, error) {
	if err := c.validateUpload(req); err != nil {
		return nil, err
	}

	now := time.Now()

	imageKey, err := c.blobs.Upload(ctx, c.imageBucket, UploadKey(now, req.Image.Filename), req.Image.Body, req.Image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	rvtKey, err := c.blobs.Upload(ctx, c.rvtBucket, UploadKey(now, req.RvtFile.Filename), req.RvtFile.Body, req.RvtFile.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload rvt file: %w", err)
	}

	family := &types.Family{
		FamilyName: strings.TrimSpace(req.FamilyName),
		Category:   req.Category,
		ImageURL:   c.blobs.PublicURL(c.imageBucket, imageKey),
		RvtFileURL: c.blobs.PublicURL(c.rvtBucket, rvtKey),
		Rating:     req.Rating,
		UserID:     req.Credential,
	}

	if err := c.store.CreateFamily(ctx, family); err != nil {
		return nil, fmt.Errorf("create family: %w", err)
	}

	if err := c.Refresh(ctx); err != nil {
		c.logger.WithError(err).Warn("refresh after upload failed")
	}

	return family, nil
}

func (c *Controller) validateUpload(req UploadRequest) error {
	if strings.TrimSpace(req.FamilyName) == "" {
		return ValidationError("family name is required")
	}
	if req.Category == "" || req.Image == nil || req.Image.Body == nil || req.RvtFile == nil || req.RvtFile.Body == nil || req.Credential == "" {
		return ValidationError("please fill in all required fields")
	}
	if !req.Category.Valid() {
		return ValidationError(types.ErrInvalidCategory.Error())
	}
	if req.Rating < 0 || req.Rating > 5 || req.Rating != math.Trunc(req.Rating) {
		return ValidationError("rating must be a whole number between 0 and 5")
	}
	if !c.policy.AuthorizesUpload(req.Credential) {
		return types.ErrNotAuthorized
	}
	return nil
}

// Delete removes a family's two blobs and then its record. Blob deletes
// are best effort: a failure is logged and the record delete proceeds. A
// failed record delete is returned and the record stays in the list until
// the next refetch.
func (c *Controller) Delete(ctx context.Context, familyID, credential string) error {
	if !c.policy.AuthorizesDelete(credential) {
		return types.ErrNotAuthorized
	}

	family, err := c.store.FamilyByID(ctx, familyID)
	if err != nil {
		return err
	}

	if err := c.blobs.Delete(ctx, c.imageBucket, BlobKeyFromURL(family.ImageURL)); err != nil {
		c.logger.WithError(err).WithField("family_id", familyID).Error("failed to delete image blob")
	}

	if err := c.blobs.Delete(ctx, c.rvtBucket, BlobKeyFromURL(family.RvtFileURL)); err != nil {
		c.logger.WithError(err).WithField("family_id", familyID).Error("failed to delete rvt blob")
	}

	if err := c.store.DeleteFamily(ctx, familyID); err != nil {
		return fmt.Errorf("delete family record: %w", err)
	}

	if err := c.Refresh(ctx); err != nil {
		c.logger.WithError(err).Warn("refresh after delete failed")
	}

	return nil
}

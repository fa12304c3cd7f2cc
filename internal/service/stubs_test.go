package service

import (
	"context"

	"haven/internal/models"
)

type articleRepoStub struct {
	createFn             func(context.Context, *models.Article) error
	getBySlugFn          func(context.Context, string) (*models.Article, error)
	getBySlugForAuthorFn func(context.Context, string, uint) (*models.Article, error)
	listFn               func(context.Context, int, int) ([]*models.Article, error)
	updateFn             func(context.Context, *models.Article) error
	replaceTagsFn        func(context.Context, *models.Article, []models.Tag) error
	deleteFn             func(context.Context, uint) error
	slugExistsFn         func(context.Context, string) (bool, error)
}

func (s *articleRepoStub) Create(ctx context.Context, article *models.Article) error {
	return s.createFn(ctx, article)
}
func (s *articleRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *articleRepoStub) GetBySlugForAuthor(ctx context.Context, slug string, authorID uint) (*models.Article, error) {
	return s.getBySlugForAuthorFn(ctx, slug, authorID)
}
func (s *articleRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *articleRepoStub) Update(ctx context.Context, article *models.Article) error {
	return s.updateFn(ctx, article)
}
func (s *articleRepoStub) ReplaceTags(ctx context.Context, article *models.Article, tags []models.Tag) error {
	return s.replaceTagsFn(ctx, article, tags)
}
func (s *articleRepoStub) Delete(ctx context.Context, articleID uint) error {
	return s.deleteFn(ctx, articleID)
}
func (s *articleRepoStub) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.slugExistsFn(ctx, slug)
}

type tagRepoStub struct {
	getOrCreateFn func(context.Context, string) (*models.Tag, error)
	listFn        func(context.Context) ([]models.Tag, error)
}

func (s *tagRepoStub) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	return s.getOrCreateFn(ctx, name)
}
func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error) {
	return s.listFn(ctx)
}

type profileRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.Profile, error)
	getByUserIDFn   func(context.Context, uint) (*models.Profile, error)
	getByUsernameFn func(context.Context, string) (*models.Profile, error)
	updateFn        func(context.Context, *models.Profile) error
	recordReadingFn func(context.Context, uint, int) error
	listFn          func(context.Context) ([]models.Profile, error)
}

func (s *profileRepoStub) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) RecordReading(ctx context.Context, profileID uint, minutes int) error {
	return s.recordReadingFn(ctx, profileID, minutes)
}
func (s *profileRepoStub) List(ctx context.Context) ([]models.Profile, error) {
	return s.listFn(ctx)
}

type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	getForArticleFn func(context.Context, uint, uint) (*models.Comment, error)
	listTopLevelFn  func(context.Context, uint) ([]*models.Comment, error)
	listRepliesFn   func(context.Context, uint, uint) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteFn        func(context.Context, *models.Comment) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetForArticle(ctx context.Context, articleID, commentID uint) (*models.Comment, error) {
	return s.getForArticleFn(ctx, articleID, commentID)
}
func (s *commentRepoStub) ListTopLevel(ctx context.Context, articleID uint) ([]*models.Comment, error) {
	return s.listTopLevelFn(ctx, articleID)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, articleID, parentID uint) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, articleID, parentID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, comment *models.Comment) error {
	return s.deleteFn(ctx, comment)
}

type followRepoStub struct {
	createFn        func(context.Context, uint, uint) error
	deleteFn        func(context.Context, uint, uint) error
	existsFn        func(context.Context, uint, uint) (bool, error)
	listFollowingFn func(context.Context, uint) ([]models.Profile, error)
	listFollowersFn func(context.Context, uint) ([]models.Profile, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followeeID uint) error {
	return s.createFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, followerID uint) ([]models.Profile, error) {
	return s.listFollowingFn(ctx, followerID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, followeeID uint) ([]models.Profile, error) {
	return s.listFollowersFn(ctx, followeeID)
}

type ratingRepoStub struct {
	createFn  func(context.Context, *models.Rating) error
	averageFn func(context.Context, uint) (float64, error)
}

func (s *ratingRepoStub) Create(ctx context.Context, rating *models.Rating) error {
	return s.createFn(ctx, rating)
}
func (s *ratingRepoStub) Average(ctx context.Context, articleID uint) (float64, error) {
	return s.averageFn(ctx, articleID)
}

type reactionRepoStub struct {
	reactFn         func(context.Context, uint, uint, models.ImpressionKind) error
	removeFn        func(context.Context, uint, uint, models.ImpressionKind) error
	getImpressionFn func(context.Context, models.ImpressionKind) (*models.Impression, error)
	countByKindFn   func(context.Context, uint, models.ImpressionKind) (int64, error)
}

func (s *reactionRepoStub) React(ctx context.Context, articleID, userID uint, kind models.ImpressionKind) error {
	return s.reactFn(ctx, articleID, userID, kind)
}
func (s *reactionRepoStub) Remove(ctx context.Context, articleID, userID uint, kind models.ImpressionKind) error {
	return s.removeFn(ctx, articleID, userID, kind)
}
func (s *reactionRepoStub) GetImpression(ctx context.Context, kind models.ImpressionKind) (*models.Impression, error) {
	return s.getImpressionFn(ctx, kind)
}
func (s *reactionRepoStub) CountByKind(ctx context.Context, articleID uint, kind models.ImpressionKind) (int64, error) {
	return s.countByKindFn(ctx, articleID, kind)
}

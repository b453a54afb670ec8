// Package mock provides in-memory repositories for service and controller tests.
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"blog/app/models"
	"blog/app/repositories"
)

type UserRepository struct {
	users  map[uint]*models.User
	nextID uint
	mutex  sync.RWMutex
}

type CategoryRepository struct {
	categories map[uint]*models.Category
	nextID     uint
	mutex      sync.RWMutex
}

type PostRepository struct {
	posts    map[uint]*models.Post
	nextID   uint
	mutex    sync.RWMutex
	users    *UserRepository
	comments *CommentRepository
}

type CommentRepository struct {
	comments map[uint]*models.Comment
	nextID   uint
	mutex    sync.RWMutex
	users    *UserRepository
}

// Set bundles mock repositories that share state, so summaries see users and comments.
type Set struct {
	Users      *UserRepository
	Categories *CategoryRepository
	Posts      *PostRepository
	Comments   *CommentRepository
}

func NewSet() *Set {
	users := NewUserRepository()
	comments := NewCommentRepository(users)
	return &Set{
		Users:      users,
		Categories: NewCategoryRepository(),
		Posts:      NewPostRepository(users, comments),
		Comments:   comments,
	}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uint]*models.User), nextID: 1}
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[uint]*models.Category), nextID: 1}
}

func NewPostRepository(users *UserRepository, comments *CommentRepository) *PostRepository {
	return &PostRepository{
		posts:    make(map[uint]*models.Post),
		nextID:   1,
		users:    users,
		comments: comments,
	}
}

func NewCommentRepository(users *UserRepository) *CommentRepository {
	return &CommentRepository{comments: make(map[uint]*models.Comment), nextID: 1, users: users}
}

// UserRepository implementation
func (m *UserRepository) Create(_ context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = m.nextID
	m.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *UserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *UserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) username(id uint) string {
	if m == nil {
		return models.UnknownAuthor
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if user, ok := m.users[id]; ok {
		return user.Username
	}
	return models.UnknownAuthor
}

// CategoryRepository implementation
func (m *CategoryRepository) FirstOrCreate(_ context.Context, name string) (*models.Category, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, c := range m.categories {
		if c.Name == name {
			copied := *c
			return &copied, false, nil
		}
	}
	category := &models.Category{ID: m.nextID, Name: name}
	m.nextID++
	m.categories[category.ID] = category
	copied := *category
	return &copied, true, nil
}

func (m *CategoryRepository) GetByID(_ context.Context, id uint) (*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	category, exists := m.categories[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *CategoryRepository) List(_ context.Context) ([]*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	categories := make([]*models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		copied := *c
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// PostRepository implementation
func (m *PostRepository) Create(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := post.BeforeCreate(nil); err != nil {
		return err
	}
	post.ID = m.nextID
	m.nextID++
	stored := *post
	stored.User, stored.Category, stored.Comments = nil, nil, nil
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	if m.users != nil {
		if user, err := m.users.GetByID(ctx, post.UserID); err == nil {
			copied.User = user
		}
	}
	return &copied, nil
}

func (m *PostRepository) ListSummaries(ctx context.Context) ([]*models.PostSummary, error) {
	return m.summaries(ctx, func(*models.Post) bool { return true })
}

func (m *PostRepository) ListSummariesByCategory(ctx context.Context, categoryID uint) ([]*models.PostSummary, error) {
	return m.summaries(ctx, func(p *models.Post) bool { return p.CategoryID == categoryID })
}

func (m *PostRepository) summaries(ctx context.Context, keep func(*models.Post) bool) ([]*models.PostSummary, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	summaries := make([]*models.PostSummary, 0, len(m.posts))
	for _, post := range m.posts {
		if !keep(post) {
			continue
		}
		var count int64
		if m.comments != nil {
			count, _ = m.comments.CountByPost(ctx, post.ID)
		}
		summaries = append(summaries, &models.PostSummary{
			ID:             post.ID,
			Title:          post.Title,
			Content:        post.Content,
			UserID:         post.UserID,
			CategoryID:     post.CategoryID,
			CreatedAt:      post.CreatedAt,
			Author:         m.users.username(post.UserID),
			CommentsAmount: count,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (m *PostRepository) Delete(_ context.Context, id uint) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := comment.BeforeCreate(nil); err != nil {
		return err
	}
	comment.ID = m.nextID
	m.nextID++
	stored := *comment
	stored.User = nil
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) ListByPost(_ context.Context, postID uint) ([]*models.CommentView, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var views []*models.CommentView
	for _, c := range m.comments {
		if c.PostID != postID {
			continue
		}
		views = append(views, &models.CommentView{
			ID:        c.ID,
			Content:   c.Content,
			PostID:    c.PostID,
			UserID:    c.UserID,
			CreatedAt: c.CreatedAt,
			Author:    m.users.username(c.UserID),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

// CountByPost counts the stored comments on a post.
func (m *CommentRepository) CountByPost(_ context.Context, postID uint) (int64, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var count int64
	for _, c := range m.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (m *CommentRepository) DeleteByPost(_ context.Context, postID uint) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, c := range m.comments {
		if c.PostID == postID {
			delete(m.comments, id)
		}
	}
	return nil
}

var (
	_ repositories.UserRepository     = (*UserRepository)(nil)
	_ repositories.CategoryRepository = (*CategoryRepository)(nil)
	_ repositories.PostRepository     = (*PostRepository)(nil)
	_ repositories.CommentRepository  = (*CommentRepository)(nil)
)

// Package testutil provides an in-memory repository set so service and
// route tests can run without a live database. Semantics mirror the
// postgres repositories: the same sentinel errors, idempotent edge
// inserts and derived counts computed on read.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/axelstam/coursetalk/internal/app/models"
	"github.com/axelstam/coursetalk/internal/app/repositories"
	"github.com/axelstam/coursetalk/internal/pkg/apperrors"
)

// Store is a thread-safe in-memory database shared by the fake
// repositories it hands out.
type Store struct {
	mu sync.Mutex

	users     map[int64]*models.User
	courses   map[int64]*models.Course
	questions map[int64]*models.Question
	answers   map[int64]*models.Answer
	follows   map[int64]map[int64]struct{} // followerID -> followedIDs
	likes     map[int64]map[int64]struct{} // questionID -> userIDs
	revoked   map[string]*models.RevokedToken

	nextUserID     int64
	nextCourseID   int64
	nextQuestionID int64
	nextAnswerID   int64
	seq            int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:     make(map[int64]*models.User),
		courses:   make(map[int64]*models.Course),
		questions: make(map[int64]*models.Question),
		answers:   make(map[int64]*models.Answer),
		follows:   make(map[int64]map[int64]struct{}),
		likes:     make(map[int64]map[int64]struct{}),
		revoked:   make(map[string]*models.RevokedToken),
	}
}

// Repositories returns a repository set backed by this store.
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Users:     &userStore{s},
		Tokens:    &tokenStore{s},
		Follows:   &followStore{s},
		Questions: &questionStore{s},
		Answers:   &answerStore{s},
		Courses:   &courseStore{s},
	}
}

// tick returns a strictly increasing timestamp so ordering by time is
// deterministic regardless of wall-clock resolution.
func (s *Store) tick() time.Time {
	s.seq++
	return time.Unix(1600000000, 0).UTC().Add(time.Duration(s.seq) * time.Second)
}

// --- users ---

type userStore struct{ s *Store }

func (r *userStore) Create(_ context.Context, user *models.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return 0, apperrors.ErrUsernameAlreadyTaken
		}
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}

	r.s.nextUserID++
	stored := *user
	stored.ID = r.s.nextUserID
	stored.CreatedAt = r.s.tick()
	r.s.users[stored.ID] = &stored
	return stored.ID, nil
}

func (r *userStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *userStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *userStore) find(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userStore) UsernameExists(_ context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *userStore) EmailExists(_ context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userStore) GetAllExcept(_ context.Context, userID int64) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var users []*models.User
	for _, u := range r.s.users {
		if u.ID == userID {
			continue
		}
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// --- tokens ---

type tokenStore struct{ s *Store }

func (r *tokenStore) Insert(_ context.Context, token *models.RevokedToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *token
	r.s.revoked[token.JTI] = &stored
	return nil
}

func (r *tokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.revoked[jti]
	return ok, nil
}

// --- follows ---

type followStore struct{ s *Store }

func (r *followStore) Follow(_ context.Context, followerID, followedID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.follows[followerID] == nil {
		r.s.follows[followerID] = make(map[int64]struct{})
	}
	r.s.follows[followerID][followedID] = struct{}{}
	return nil
}

func (r *followStore) Unfollow(_ context.Context, followerID, followedID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.follows[followerID], followedID)
	return nil
}

func (r *followStore) IsFollowing(_ context.Context, followerID, followedID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.follows[followerID][followedID]
	return ok, nil
}

func (r *followStore) GetFollowed(_ context.Context, followerID int64) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var users []*models.User
	for followedID := range r.s.follows[followerID] {
		if u, ok := r.s.users[followedID]; ok {
			copied := *u
			users = append(users, &copied)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// --- questions ---

type questionStore struct{ s *Store }

func (r *questionStore) Create(_ context.Context, question *models.Question) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextQuestionID++
	stored := *question
	stored.ID = r.s.nextQuestionID
	stored.Timestamp = r.s.tick()
	r.s.questions[stored.ID] = &stored
	return stored.ID, nil
}

func (r *questionStore) GetByID(_ context.Context, id int64) (*models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.questions[id]
	if !ok {
		return nil, apperrors.ErrQuestionNotFound
	}
	return r.s.projectQuestion(q), nil
}

func (r *questionStore) GetByAuthor(_ context.Context, userID int64) ([]*models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var questions []*models.Question
	for _, q := range r.s.questions {
		if q.UserID == userID {
			questions = append(questions, r.s.projectQuestion(q))
		}
	}
	sortNewestFirst(questions)
	return questions, nil
}

func (r *questionStore) GetFeed(_ context.Context, followerID int64) ([]*models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var questions []*models.Question
	for _, q := range r.s.questions {
		if _, ok := r.s.follows[followerID][q.UserID]; ok {
			questions = append(questions, r.s.projectQuestion(q))
		}
	}
	sortNewestFirst(questions)
	return questions, nil
}

func (r *questionStore) Like(_ context.Context, userID, questionID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.likes[questionID] == nil {
		r.s.likes[questionID] = make(map[int64]struct{})
	}
	r.s.likes[questionID][userID] = struct{}{}
	return nil
}

func (r *questionStore) Unlike(_ context.Context, userID, questionID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.likes[questionID], userID)
	return nil
}

func (r *questionStore) IsLiking(_ context.Context, userID, questionID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.likes[questionID][userID]
	return ok, nil
}

// projectQuestion expands a stored question the way the SQL projection
// does: author and course attached, like and answer counts computed.
// Caller holds the lock.
func (s *Store) projectQuestion(q *models.Question) *models.Question {
	copied := *q
	if u, ok := s.users[q.UserID]; ok {
		author := *u
		copied.Author = &author
	}
	if c, ok := s.courses[q.CourseID]; ok {
		course := *c
		copied.Course = &course
	}
	copied.Likes = len(s.likes[q.ID])
	copied.AnswerCount = 0
	for _, a := range s.answers {
		if a.QuestionID == q.ID {
			copied.AnswerCount++
		}
	}
	return &copied
}

func sortNewestFirst(questions []*models.Question) {
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].Timestamp.After(questions[j].Timestamp)
	})
}

// --- answers ---

type answerStore struct{ s *Store }

func (r *answerStore) Create(_ context.Context, answer *models.Answer) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextAnswerID++
	stored := *answer
	stored.ID = r.s.nextAnswerID
	stored.Timestamp = r.s.tick()
	r.s.answers[stored.ID] = &stored
	return stored.ID, nil
}

func (r *answerStore) GetByQuestionID(_ context.Context, questionID int64) ([]*models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var answers []*models.Answer
	for _, a := range r.s.answers {
		if a.QuestionID == questionID {
			copied := *a
			if u, ok := r.s.users[a.UserID]; ok {
				author := *u
				copied.Author = &author
			}
			answers = append(answers, &copied)
		}
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].ID < answers[j].ID })
	return answers, nil
}

// --- courses ---

type courseStore struct{ s *Store }

func (r *courseStore) Create(_ context.Context, course *models.Course) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.courses {
		if c.CourseCode == course.CourseCode {
			return 0, apperrors.NewConflictError("course code already exists")
		}
	}

	r.s.nextCourseID++
	stored := *course
	stored.ID = r.s.nextCourseID
	r.s.courses[stored.ID] = &stored
	return stored.ID, nil
}

func (r *courseStore) GetByCode(_ context.Context, courseCode string) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.courses {
		if c.CourseCode == courseCode {
			copied := *c
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r *courseStore) GetAll(_ context.Context) ([]*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var courses []*models.Course
	for _, c := range r.s.courses {
		copied := *c
		courses = append(courses, &copied)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

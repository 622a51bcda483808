package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/arzan03/lingo/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memory is an in-process store with the same uniqueness rules as the Mongo
// indexes. Every operation holds one lock, so multi-document writes are atomic.
type memory struct {
	mu           sync.RWMutex
	now          func() time.Time
	users        map[string]models.User
	lessons      map[primitive.ObjectID]models.Lesson
	vocabularies map[primitive.ObjectID]models.Vocabulary
	tutorials    map[primitive.ObjectID]models.Tutorial
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() *Store {
	m := &memory{
		now:          func() time.Time { return time.Now().UTC() },
		users:        map[string]models.User{},
		lessons:      map[primitive.ObjectID]models.Lesson{},
		vocabularies: map[primitive.ObjectID]models.Vocabulary{},
		tutorials:    map[primitive.ObjectID]models.Tutorial{},
	}
	return &Store{
		Users:        &memUsers{m},
		Lessons:      &memLessons{m},
		Vocabularies: &memVocabularies{m},
		Tutorials:    &memTutorials{m},
		Ping:         func(context.Context) error { return nil },
	}
}

func cloneLesson(l models.Lesson) models.Lesson {
	l.Vocabularies = slices.Clone(l.Vocabularies)
	l.SyncCount()
	return l
}

type memUsers struct{ *memory }

func (r *memUsers) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Email]; ok {
		return ErrDuplicate
	}
	now := r.now()
	u.ID = primitive.NewObjectID()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.Email] = *u
	return nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memUsers) List(context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *memUsers) UpdateRole(_ context.Context, email string, role models.Role) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = r.now()
	r.users[email] = u
	return &u, nil
}

func (r *memUsers) SetPhoto(_ context.Context, email, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return ErrNotFound
	}
	u.Photo = ref
	u.UpdatedAt = r.now()
	r.users[email] = u
	return nil
}

type memLessons struct{ *memory }

func (r *memLessons) numberTaken(number int, except primitive.ObjectID) bool {
	for id, l := range r.lessons {
		if id != except && l.Number == number {
			return true
		}
	}
	return false
}

func (r *memLessons) Create(_ context.Context, l *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.numberTaken(l.Number, primitive.NilObjectID) {
		return ErrDuplicate
	}
	now := r.now()
	l.ID = primitive.NewObjectID()
	l.CreatedAt, l.UpdatedAt = now, now
	l.SyncCount()
	r.lessons[l.ID] = cloneLesson(*l)
	return nil
}

func (r *memLessons) FindByID(_ context.Context, id primitive.ObjectID) (*models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lessons[id]
	if !ok {
		return nil, ErrNotFound
	}
	l = cloneLesson(l)
	return &l, nil
}

func (r *memLessons) List(context.Context) ([]models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Lesson, 0, len(r.lessons))
	for _, l := range r.lessons {
		out = append(out, cloneLesson(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *memLessons) Update(_ context.Context, id primitive.ObjectID, upd LessonUpdate) (*models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lessons[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Number != nil && r.numberTaken(*upd.Number, id) {
		return nil, ErrDuplicate
	}
	if upd.Title != nil {
		l.Title = *upd.Title
	}
	if upd.Number != nil {
		l.Number = *upd.Number
	}
	l.UpdatedAt = r.now()
	r.lessons[id] = l
	l = cloneLesson(l)
	return &l, nil
}

func (r *memLessons) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lessons[id]; !ok {
		return ErrNotFound
	}
	delete(r.lessons, id)
	for vid, v := range r.vocabularies {
		if v.Lesson == id {
			delete(r.vocabularies, vid)
		}
	}
	return nil
}

type memVocabularies struct{ *memory }

func (r *memVocabularies) CreateInLesson(_ context.Context, v *models.Vocabulary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lessons[v.Lesson]
	if !ok {
		return ErrNotFound
	}
	now := r.now()
	v.ID = primitive.NewObjectID()
	v.CreatedAt, v.UpdatedAt = now, now
	r.vocabularies[v.ID] = *v

	l.Vocabularies = append(slices.Clone(l.Vocabularies), v.ID)
	l.SyncCount()
	l.UpdatedAt = now
	r.lessons[l.ID] = l
	return nil
}

func (r *memVocabularies) FindByID(_ context.Context, id primitive.ObjectID) (*models.Vocabulary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vocabularies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (r *memVocabularies) List(_ context.Context, lessonID *primitive.ObjectID) ([]models.Vocabulary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Vocabulary{}
	for _, v := range r.vocabularies {
		if lessonID == nil || v.Lesson == *lessonID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() < out[j].ID.Hex()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memVocabularies) Update(_ context.Context, id primitive.ObjectID, upd VocabularyUpdate) (*models.Vocabulary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vocabularies[id]
	if !ok {
		return nil, ErrNotFound
	}
	assign(&v.Word, upd.Word)
	assign(&v.Pronunciation, upd.Pronunciation)
	assign(&v.Meaning, upd.Meaning)
	assign(&v.WhenToSay, upd.WhenToSay)
	v.UpdatedAt = r.now()
	r.vocabularies[id] = v
	return &v, nil
}

func (r *memVocabularies) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vocabularies[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.vocabularies, id)

	if l, ok := r.lessons[v.Lesson]; ok {
		l.Vocabularies = slices.DeleteFunc(slices.Clone(l.Vocabularies), func(ref primitive.ObjectID) bool { return ref == id })
		l.SyncCount()
		l.UpdatedAt = r.now()
		r.lessons[l.ID] = l
	}
	return nil
}

type memTutorials struct{ *memory }

func (r *memTutorials) Create(_ context.Context, t *models.Tutorial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	t.ID = primitive.NewObjectID()
	t.CreatedAt, t.UpdatedAt = now, now
	r.tutorials[t.ID] = *t
	return nil
}

func (r *memTutorials) FindByID(_ context.Context, id primitive.ObjectID) (*models.Tutorial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tutorials[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *memTutorials) List(context.Context) ([]models.Tutorial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Tutorial, 0, len(r.tutorials))
	for _, t := range r.tutorials {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() > out[j].ID.Hex()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memTutorials) Update(_ context.Context, id primitive.ObjectID, upd TutorialUpdate) (*models.Tutorial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tutorials[id]
	if !ok {
		return nil, ErrNotFound
	}
	assign(&t.Title, upd.Title)
	assign(&t.Link, upd.Link)
	t.UpdatedAt = r.now()
	r.tutorials[id] = t
	return &t, nil
}

func (r *memTutorials) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tutorials[id]; !ok {
		return ErrNotFound
	}
	delete(r.tutorials, id)
	return nil
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

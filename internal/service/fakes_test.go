package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"journal/internal/domain/entity"
	"journal/internal/validators"

	"github.com/go-playground/validator/v10"
)

func newValidate() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	return validate
}

/*
 * In-memory user repository
 */

type fakeUserRepo struct {
	users  []*entity.User
	nextID int
	fail   bool
}

var errStoreDown = errors.New("store unavailable")

func (f *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	if f.fail {
		return nil, errStoreDown
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if f.fail {
		return nil, errStoreDown
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Insert(user *entity.User) error {
	if f.fail {
		return errStoreDown
	}
	f.nextID++
	user.ID = "user-" + strconv.Itoa(f.nextID)
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) Save(user *entity.User) error {
	if f.fail {
		return errStoreDown
	}
	return nil
}

/*
 * Mailer spy
 */

type fakeMailer struct {
	sentTo    []string
	sentCodes []string
	err       error
}

func (f *fakeMailer) SendVerificationCode(_ context.Context, email, code string) error {
	f.sentTo = append(f.sentTo, email)
	f.sentCodes = append(f.sentCodes, code)
	return f.err
}

/*
 * In-memory entry repository
 */

type fakeEntryRepo struct {
	entries []*entity.Entry
	nextID  int
}

func (f *fakeEntryRepo) FindAllByUser(userID, tagID string, favoriteOnly bool) ([]*entity.Entry, error) {
	var out []*entity.Entry
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		if tagID != "" && !e.Tags.Contains(tagID) {
			continue
		}
		if favoriteOnly && !e.IsFavorite {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

func (f *fakeEntryRepo) FindByIDAndUser(id, userID string) (*entity.Entry, error) {
	for _, e := range f.entries {
		if e.ID == id && e.UserID == userID {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryRepo) Insert(entry *entity.Entry) error {
	f.nextID++
	entry.ID = "entry-" + strconv.Itoa(f.nextID)
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeEntryRepo) Save(entry *entity.Entry) error {
	return nil
}

func (f *fakeEntryRepo) Delete(entry *entity.Entry) error {
	for i, e := range f.entries {
		if e.ID == entry.ID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeEntryRepo) Search(userID, query string, limit int) ([]*entity.Entry, error) {
	needle := strings.ToLower(query)

	var out []*entity.Entry
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Content), needle) {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) RemoveTagFromEntries(userID, tagID string) error {
	for _, e := range f.entries {
		if e.UserID == userID && e.Tags.Contains(tagID) {
			e.Tags = e.Tags.Without(tagID)
		}
	}
	return nil
}

/*
 * In-memory tag repository
 */

type fakeTagRepo struct {
	tags   []*entity.Tag
	nextID int
}

func (f *fakeTagRepo) FindAllByUser(userID string) ([]*entity.Tag, error) {
	var out []*entity.Tag
	for _, t := range f.tags {
		if t.UserID == userID {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeTagRepo) FindByIDAndUser(id, userID string) (*entity.Tag, error) {
	for _, t := range f.tags {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTagRepo) FindByUserAndName(userID, name string) (*entity.Tag, error) {
	for _, t := range f.tags {
		if t.UserID == userID && strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTagRepo) Insert(tag *entity.Tag) error {
	f.nextID++
	tag.ID = "tag-" + strconv.Itoa(f.nextID)
	f.tags = append(f.tags, tag)
	return nil
}

func (f *fakeTagRepo) Save(tag *entity.Tag) error {
	return nil
}

func (f *fakeTagRepo) Delete(tag *entity.Tag) error {
	for i, t := range f.tags {
		if t.ID == tag.ID {
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			return nil
		}
	}
	return nil
}

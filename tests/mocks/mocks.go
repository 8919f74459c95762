package mocks

import (
	"sort"
	"time"

	"ewaste/models"
)

type MockUserRepo struct {
	Users map[string]models.User // keyed by email
}

func (m *MockUserRepo) Create(u *models.User) error {
	if _, ok := m.Users[u.Email]; ok {
		return models.ErrDuplicateEmail
	}
	u.ID = int64(len(m.Users) + 1)
	m.Users[u.Email] = *u
	return nil
}

// Passwords are kept plaintext in the mock; hashing belongs to the real repo.
func (m *MockUserRepo) ValidateCredentials(email, plain string) (models.User, error) {
	u, ok := m.Users[email]
	if !ok || u.Password != plain {
		return models.User{}, models.ErrInvalidCredentials
	}
	return u, nil
}

func (m *MockUserRepo) GetByID(id int64) (models.User, error) {
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

type MockEventRepo struct{ Items map[string]models.Event }

func (m *MockEventRepo) GetAll() ([]models.Event, error) {
	out := make([]models.Event, 0, len(m.Items))
	for _, e := range m.Items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *MockEventRepo) GetByID(id string) (models.Event, error) {
	e, ok := m.Items[id]
	if !ok {
		return models.Event{}, models.ErrNotFound
	}
	return e, nil
}

func (m *MockEventRepo) Create(e *models.Event) error { m.Items[e.ID] = *e; return nil }
func (m *MockEventRepo) Delete(id string) error       { delete(m.Items, id); return nil }

// MockDropOffRepo mirrors the SQL repo's contract: the submit both appends a
// ledger entry and bumps the owner's balance.
type MockDropOffRepo struct {
	Items  []models.DropOff
	Users  *MockUserRepo
	nextID int64
}

func (m *MockDropOffRepo) Submit(userID int64, eventID string, electronics []string, items string) (models.DropOff, int64, error) {
	m.nextID++
	d := models.DropOff{
		ID:          m.nextID,
		UserID:      userID,
		EventID:     eventID,
		Electronics: electronics,
		Items:       items,
		Rewards:     models.RewardPerDropOff,
		CreatedAt:   time.Now().UTC(),
	}
	m.Items = append(m.Items, d)

	var balance int64
	for k, u := range m.Users.Users {
		if u.ID == userID {
			u.Rewards += d.Rewards
			m.Users.Users[k] = u
			balance = u.Rewards
			break
		}
	}
	return d, balance, nil
}

func (m *MockDropOffRepo) ListByEvent(eventID string) ([]models.DropOff, error) {
	out := []models.DropOff{}
	for _, d := range m.Items {
		if d.EventID != eventID {
			continue
		}
		for _, u := range m.Users.Users {
			if u.ID == d.UserID {
				d.UserEmail = u.Email
				break
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *MockDropOffRepo) DeleteByEvent(eventID string) error {
	kept := m.Items[:0]
	for _, d := range m.Items {
		if d.EventID != eventID {
			kept = append(kept, d)
		}
	}
	m.Items = kept
	return nil
}

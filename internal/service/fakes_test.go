package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/ws"
)

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]model.User
	lastSeen int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]model.User{}}
}

func (r *fakeUserRepo) put(u model.User) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return &u
}

func (r *fakeUserRepo) get(id uuid.UUID) model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindAll(roleCode string) ([]model.User, error) {
	return r.FindActiveByRole(roleCode)
}

func (r *fakeUserRepo) FindActiveByRole(roleCode string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if roleCode == "" || u.RoleCode() == roleCode {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if _, err := r.FindByEmail(user.Email); err == nil {
		return repository.ErrDuplicate
	}
	*user = *r.put(*user)
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.put(*user)
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) modify(id uuid.UUID, fn func(u *model.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	fn(&u)
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) UpdatePassword(id uuid.UUID, hashed string) error {
	return r.modify(id, func(u *model.User) { u.Password = hashed })
}

func (r *fakeUserRepo) UpdatePrivileges(id uuid.UUID, privileges []model.Privilege) error {
	return r.modify(id, func(u *model.User) { u.Privileges = privileges })
}

func (r *fakeUserRepo) UpdateTokenVersion(id uuid.UUID, version string) error {
	return r.modify(id, func(u *model.User) { u.TokenVersion = version })
}

func (r *fakeUserRepo) UpdateLastSeen(id uuid.UUID, at time.Time) error {
	return r.modify(id, func(u *model.User) {
		r.lastSeen++
		u.LastSeenAt = &at
	})
}

type fakeRoleRepo struct {
	roles []model.Role
}

func (r *fakeRoleRepo) FindAll() ([]model.Role, error) { return r.roles, nil }

func (r *fakeRoleRepo) FindByID(id uint) (*model.Role, error) {
	for _, role := range r.roles {
		if role.ID == id {
			return &role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) FindByCode(code string) (*model.Role, error) {
	for _, role := range r.roles {
		if role.Code == code {
			return &role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) SeedDefaults() error { return nil }

type fakeTokenRepo struct {
	tokens    map[string]*model.AccessToken
	users     *fakeUserRepo
	createErr []error
}

func newFakeTokenRepo(users *fakeUserRepo) *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*model.AccessToken{}, users: users}
}

func (r *fakeTokenRepo) Create(token *model.AccessToken) error {
	if len(r.createErr) > 0 {
		err := r.createErr[0]
		r.createErr = r.createErr[1:]
		if err != nil {
			return err
		}
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeTokenRepo) FindAll() ([]model.AccessToken, error) {
	var out []model.AccessToken
	for _, t := range r.tokens {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTokenRepo) Redeem(code string, user *model.User) error {
	token, ok := r.tokens[code]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if token.IsUsed {
		return repository.ErrTokenUsed
	}
	if err := r.users.Create(user); err != nil {
		return err
	}
	token.IsUsed = true
	token.UsedByUserID = &user.ID
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *fakePublisher) Broadcast(_ context.Context, event ws.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) SendToUsers(ctx context.Context, _ []uuid.UUID, event ws.Event) error {
	return p.Broadcast(ctx, event)
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeBuyerRepo struct {
	buyers map[uuid.UUID]model.Buyer
}

func newFakeBuyerRepo() *fakeBuyerRepo {
	return &fakeBuyerRepo{buyers: map[uuid.UUID]model.Buyer{}}
}

func (r *fakeBuyerRepo) FindAll(search string) ([]model.Buyer, error) {
	var out []model.Buyer
	for _, b := range r.buyers {
		if b.IsActive && strings.Contains(strings.ToLower(b.Name), strings.ToLower(search)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBuyerRepo) FindByID(id uuid.UUID) (*model.Buyer, error) {
	b, ok := r.buyers[id]
	if !ok || !b.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *fakeBuyerRepo) Create(buyer *model.Buyer) error {
	if buyer.ID == uuid.Nil {
		buyer.ID = uuid.New()
	}
	r.buyers[buyer.ID] = *buyer
	return nil
}

func (r *fakeBuyerRepo) Update(buyer *model.Buyer) error {
	if _, ok := r.buyers[buyer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.buyers[buyer.ID] = *buyer
	return nil
}

func (r *fakeBuyerRepo) Delete(id uuid.UUID, deletedBy string) error {
	b, ok := r.buyers[id]
	if !ok || !b.IsActive {
		return gorm.ErrRecordNotFound
	}
	b.IsActive = false
	b.DeletedBy = deletedBy
	r.buyers[id] = b
	return nil
}

// fakeNotificationRepo keeps insertion order; newest is last.
type fakeNotificationRepo struct {
	items []model.Notification
}

func (r *fakeNotificationRepo) Create(n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.items = append(r.items, *n)
	return nil
}

func (r *fakeNotificationRepo) FindByUser(userID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	var out []model.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		n := r.items[i]
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(id, userID uuid.UUID) (*model.Notification, error) {
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].UserID == userID {
			r.items[i].IsRead = true
			n := r.items[i]
			return &n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(userID uuid.UUID) (int64, error) {
	var updated int64
	for i := range r.items {
		if r.items[i].UserID == userID && !r.items[i].IsRead {
			r.items[i].IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (r *fakeNotificationRepo) Delete(id, userID uuid.UUID) error {
	for i, n := range r.items {
		if n.ID == id && n.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeSettingsRepo struct {
	settings model.SystemSettings
	saves    int
	saveErr  error
}

func (r *fakeSettingsRepo) Get() (*model.SystemSettings, error) {
	s := r.settings
	return &s, nil
}

func (r *fakeSettingsRepo) Save(settings *model.SystemSettings) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.settings = *settings
	return nil
}

// fakeProductRepo stores whole rows, so any field the service changes is kept.
type fakeProductRepo struct {
	products map[uuid.UUID]model.Product
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[uuid.UUID]model.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) FindAll(repository.ProductFilter) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindBySKU(sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) Update(product *model.Product) error {
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID, _ string) error {
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

package service_test

import (
	"strings"

	"go-pos-kasir/internal/model"
	"go-pos-kasir/internal/repository"
	"go-pos-kasir/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// fakeTxManager runs the callback directly; the error path stands in for a
// rollback since no fake write happens after the first error.
type fakeTxManager struct{}

func (f *fakeTxManager) Transaction(fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindAll() ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) SearchByName(query string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(id)
}

func (r *fakeProductRepo) LockByIDs(tx *gorm.DB, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = newStock
	return nil
}

func (r *fakeProductRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock -= quantity
	return nil
}

func (r *fakeProductRepo) stockOf(id uuid.UUID) int {
	return r.products[id].Stock
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

type fakeSaleRepo struct {
	created    []model.Sale
	reportRows []repository.ReportRow
	lastFilter *repository.ReportFilter
	createErr  error
}

func (r *fakeSaleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	sale.ID = uuid.New()
	r.created = append(r.created, *sale)
	return nil
}

func (r *fakeSaleRepo) Report(filter repository.ReportFilter) ([]repository.ReportRow, error) {
	r.lastFilter = &filter
	if r.reportRows == nil {
		return []repository.ReportRow{}, nil
	}
	return r.reportRows, nil
}

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

type fakeAuditRepo struct {
	entries []model.AuditLog
	err     error
}

func (r *fakeAuditRepo) Create(entry *model.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) CreateTx(tx *gorm.DB, entry *model.AuditLog) error {
	return r.Create(entry)
}

func (r *fakeAuditRepo) FindAll() ([]model.AuditLog, error) {
	return r.entries, nil
}

var _ repository.AuditLogRepository = (*fakeAuditRepo)(nil)

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newFakeCategoryRepo(categories ...*model.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
	for _, c := range categories {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) Create(category *model.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) FindAll() ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

type fakeUserRepo struct {
	byEmail map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{byEmail: make(map[string]*model.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		repo.byEmail[u.Email] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	u, err := r.FindByID(userID)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

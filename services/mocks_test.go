package services_test

import (
	"context"
	"time"

	"furniture-service/models"
	"furniture-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Mock Category Repository ---

type mockCategoryRepo struct {
	items []*models.Category
}

func (m *mockCategoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range m.items {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCategoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	for _, c := range m.items {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockCategoryRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range m.items {
		for _, id := range ids {
			if c.ID == id {
				out = append(out, *c)
			}
		}
	}
	return out, nil
}

func (m *mockCategoryRepo) Create(_ context.Context, c *models.Category) error {
	for _, existing := range m.items {
		if existing.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	m.items = append(m.items, &cp)
	return nil
}

func (m *mockCategoryRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Category, error) {
	for _, c := range m.items {
		if c.ID != id {
			continue
		}
		if v, ok := updates["name"].(string); ok {
			c.Name = v
		}
		if v, ok := updates["description"].(string); ok {
			c.Description = v
		}
		c.UpdatedAt = time.Now()
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockCategoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, c := range m.items {
		if c.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockCategoryRepo) EnsureIndexes(_ context.Context) error { return nil }

// --- Mock Tag Repository ---

type mockTagRepo struct {
	items []*models.Tag
}

func (m *mockTagRepo) FindAll(_ context.Context) ([]models.Tag, error) {
	out := []models.Tag{}
	for _, t := range m.items {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTagRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Tag, error) {
	for _, t := range m.items {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockTagRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Tag, error) {
	out := []models.Tag{}
	for _, t := range m.items {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, *t)
			}
		}
	}
	return out, nil
}

func (m *mockTagRepo) Create(_ context.Context, t *models.Tag) error {
	for _, existing := range m.items {
		if existing.Name == t.Name {
			return repository.ErrDuplicate
		}
	}
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	cp := *t
	m.items = append(m.items, &cp)
	return nil
}

func (m *mockTagRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Tag, error) {
	for _, t := range m.items {
		if t.ID == id {
			if v, ok := updates["name"].(string); ok {
				t.Name = v
			}
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockTagRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, t := range m.items {
		if t.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockTagRepo) EnsureIndexes(_ context.Context) error { return nil }

// --- Mock Product Repository ---

type mockProductRepo struct {
	items []*models.Product
}

func (m *mockProductRepo) filter(keep func(*models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range m.items {
		if keep(p) {
			out = append(out, *p)
		}
	}
	return out
}

func (m *mockProductRepo) FindAll(_ context.Context) ([]models.Product, error) {
	return m.filter(func(*models.Product) bool { return true }), nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	for _, p := range m.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockProductRepo) FindByCategory(_ context.Context, categoryID primitive.ObjectID) ([]models.Product, error) {
	return m.filter(func(p *models.Product) bool { return p.Category == categoryID }), nil
}

func (m *mockProductRepo) FindByTag(_ context.Context, tagID primitive.ObjectID) ([]models.Product, error) {
	return m.filter(func(p *models.Product) bool {
		for _, t := range p.Tags {
			if t == tagID {
				return true
			}
		}
		return false
	}), nil
}

func (m *mockProductRepo) Create(_ context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	m.items = append(m.items, &cp)
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Product, error) {
	for _, p := range m.items {
		if p.ID != id {
			continue
		}
		for k, v := range updates {
			switch k {
			case "name":
				p.Name = v.(string)
			case "description":
				p.Description = v.(string)
			case "price":
				p.Price = v.(float64)
			case "stock":
				p.Stock = v.(int)
			case "color":
				p.Color = v.(string)
			case "category":
				p.Category = v.(primitive.ObjectID)
			case "tags":
				p.Tags = v.([]primitive.ObjectID)
			case "images":
				p.Images = v.([]string)
			}
		}
		p.UpdatedAt = time.Now()
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, p := range m.items {
		if p.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockProductRepo) EnsureIndexes(_ context.Context) error { return nil }

// --- Mock SNS Publisher ---

type mockSNSPublisher struct {
	topics     []string
	messages   [][]byte
	attributes []map[string]string
	err        error
}

func (m *mockSNSPublisher) Publish(_ context.Context, topicArn string, message []byte, attributes map[string]string) error {
	m.topics = append(m.topics, topicArn)
	m.messages = append(m.messages, message)
	m.attributes = append(m.attributes, attributes)
	return m.err
}

// --- Mock Presigner ---

type mockPresigner struct {
	bucket, key, contentType string
	expires                  time.Duration
}

func (m *mockPresigner) PresignPut(_ context.Context, bucket, key, contentType string, expires time.Duration) (string, error) {
	m.bucket, m.key, m.contentType, m.expires = bucket, key, contentType, expires
	return "https://signed.example/" + key, nil
}

// --- Mock Generator ---

type mockGenerator struct {
	GenerateContentFn func(ctx context.Context, prompt string) (string, error)
	prompts           []string
}

func (m *mockGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.GenerateContentFn(ctx, prompt)
}

func fixedGenerator(text string) *mockGenerator {
	return &mockGenerator{GenerateContentFn: func(context.Context, string) (string, error) {
		return text, nil
	}}
}

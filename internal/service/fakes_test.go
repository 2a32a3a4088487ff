package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/enpl/fieldops-console/internal/domain"
	"github.com/enpl/fieldops-console/internal/events"
)

// In-memory repository fakes. They mirror the Postgres implementations'
// contract: pgx.ErrNoRows on a miss, generated IDs on create.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	return r.filter(func(domain.User) bool { return true }), nil
}

func (r *fakeUserRepo) ListByAdminID(_ context.Context, adminID int64) ([]domain.User, error) {
	return r.filter(func(u domain.User) bool {
		return u.AdminID != nil && *u.AdminID == adminID
	}), nil
}

func (r *fakeUserRepo) ListManagersByAdminID(_ context.Context, adminID int64) ([]domain.User, error) {
	return r.filter(func(u domain.User) bool {
		return u.Role == domain.RoleManager && u.AdminID != nil && *u.AdminID == adminID
	}), nil
}

func (r *fakeUserRepo) ListExecutivesByManagerID(_ context.Context, managerID int64) ([]domain.User, error) {
	return r.filter(func(u domain.User) bool {
		return u.Role == domain.RoleExecutive && u.ManagerID != nil && *u.ManagerID == managerID
	}), nil
}

func (r *fakeUserRepo) CountSubordinates(_ context.Context, managerID int64) (int64, error) {
	subs := r.filter(func(u domain.User) bool {
		return u.ManagerID != nil && *u.ManagerID == managerID
	})
	return int64(len(subs)), nil
}

func (r *fakeUserRepo) filter(keep func(domain.User) bool) []domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, user := range r.users {
		if keep(user) {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeCustomerRepo struct {
	nextID    int64
	customers map[int64]domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[int64]domain.Customer{}}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	r.nextID++
	customer.ID = r.nextID
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	if _, ok := r.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &customer, nil
}

func (r *fakeCustomerRepo) GetByName(_ context.Context, name string) (*domain.Customer, error) {
	for _, customer := range r.customers {
		if customer.CustomerName == name {
			c := customer
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.customers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) ListAll(_ context.Context) ([]domain.Customer, error) {
	out := []domain.Customer{}
	for _, customer := range r.customers {
		out = append(out, customer)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeSiteRepo struct {
	nextID int64
	sites  map[int64]domain.Site
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{sites: map[int64]domain.Site{}}
}

func (r *fakeSiteRepo) Create(_ context.Context, site *domain.Site) error {
	r.nextID++
	site.ID = r.nextID
	r.sites[site.ID] = *site
	return nil
}

func (r *fakeSiteRepo) Update(_ context.Context, site *domain.Site) error {
	if _, ok := r.sites[site.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.sites[site.ID] = *site
	return nil
}

func (r *fakeSiteRepo) GetByID(_ context.Context, id int64) (*domain.Site, error) {
	site, ok := r.sites[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &site, nil
}

func (r *fakeSiteRepo) GetByName(_ context.Context, name string) (*domain.Site, error) {
	var match *domain.Site
	for _, site := range r.sites {
		if site.SiteName != name {
			continue
		}
		s := site
		if match == nil || s.ID < match.ID {
			match = &s
		}
	}
	if match == nil {
		return nil, pgx.ErrNoRows
	}
	return match, nil
}

func (r *fakeSiteRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.sites[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.sites, id)
	return nil
}

func (r *fakeSiteRepo) ListAll(_ context.Context) ([]domain.Site, error) {
	out := []domain.Site{}
	for _, site := range r.sites {
		out = append(out, site)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeServiceRepo struct {
	nextID   int64
	services map[int64]domain.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[int64]domain.Service{}}
}

func (r *fakeServiceRepo) Create(_ context.Context, service *domain.Service) error {
	r.nextID++
	service.ID = r.nextID
	r.services[service.ID] = *service
	return nil
}

func (r *fakeServiceRepo) Update(_ context.Context, service *domain.Service) error {
	if _, ok := r.services[service.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.services[service.ID] = *service
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	service, ok := r.services[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &service, nil
}

func (r *fakeServiceRepo) GetByName(_ context.Context, name string) (*domain.Service, error) {
	for _, service := range r.services {
		if service.ServiceName == name {
			s := service
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeServiceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.services[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) ListAll(_ context.Context) ([]domain.Service, error) {
	out := []domain.Service{}
	for _, service := range r.services {
		out = append(out, service)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeDeviceRepo struct {
	nextID  int64
	devices map[int64]domain.Device
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: map[int64]domain.Device{}}
}

func (r *fakeDeviceRepo) Create(_ context.Context, device *domain.Device) error {
	r.nextID++
	device.ID = r.nextID
	r.devices[device.ID] = *device
	return nil
}

func (r *fakeDeviceRepo) Update(_ context.Context, device *domain.Device) error {
	if _, ok := r.devices[device.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.devices[device.ID] = *device
	return nil
}

func (r *fakeDeviceRepo) GetByID(_ context.Context, id int64) (*domain.Device, error) {
	device, ok := r.devices[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &device, nil
}

func (r *fakeDeviceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.devices[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.devices, id)
	return nil
}

func (r *fakeDeviceRepo) ListAll(_ context.Context) ([]domain.Device, error) {
	out := []domain.Device{}
	for _, device := range r.devices {
		out = append(out, device)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeTaskRepo struct {
	nextID int64
	tasks  map[int64]domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]domain.Task{}}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.nextID++
	task.ID = r.nextID
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &task, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) DeleteBySiteID(_ context.Context, siteID int64) (int64, error) {
	var removed int64
	for id, task := range r.tasks {
		if task.SiteID == siteID {
			delete(r.tasks, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeTaskRepo) ListAll(_ context.Context) ([]domain.Task, error) {
	out := []domain.Task{}
	for _, task := range r.tasks {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeSequenceRepo struct {
	counters map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: map[string]int64{}}
}

func (r *fakeSequenceRepo) Next(_ context.Context, kind string) (int64, error) {
	r.counters[kind]++
	return r.counters[kind], nil
}

// memoryScopeCache records cache traffic so tests can assert hit and
// invalidation behavior.
type memoryScopeCache struct {
	entries     map[string][]domain.User
	gets        int
	hits        int
	invalidated int
}

func newMemoryScopeCache() *memoryScopeCache {
	return &memoryScopeCache{entries: map[string][]domain.User{}}
}

func (c *memoryScopeCache) Get(_ context.Context, key string) ([]domain.User, bool) {
	c.gets++
	users, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return users, ok
}

func (c *memoryScopeCache) Set(_ context.Context, key string, users []domain.User) {
	c.entries[key] = users
}

func (c *memoryScopeCache) Invalidate(_ context.Context) {
	c.entries = map[string][]domain.User{}
	c.invalidated++
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []events.Event{}
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }

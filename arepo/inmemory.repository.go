package arepo

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryRepository returns an implementation of Repository for the given entity E.
// It is expected that E has a field called `ID`, that is used as the primary key and can
// be overwritten by WithIDField.
// If your repository needs additional methods, you can embed this repo into your own implementation.
// See the examples in the test files.
//
// The entities are kept in insertion order and all methods return copies,
// so callers never share memory with the repository.
func NewMemoryRepository[E any, ID id](opts ...Option) *MemoryRepository[E, ID] {
	repo := &MemoryRepository[E, ID]{
		Mutex: &sync.Mutex{},
		data:  []E{},
		repoConfig: repoConfig{
			idFieldName: "ID",
		},
	}

	for _, opt := range opts {
		opt(&repo.repoConfig)
	}

	return repo
}

// MemoryRepository implements Repository in a generic way.
type MemoryRepository[E any, ID id] struct {
	// Mutex is embedded, so that repositories who extend MemoryRepository can lock the same mutex as other methods.
	*sync.Mutex

	data []E

	repoConfig
}

var _ Repository[struct{ ID int }, int] = (*MemoryRepository[struct{ ID int }, int])(nil)

const panicIDNotSupported = "type of ID is not supported: "

func (repo *MemoryRepository[E, ID]) getID(entity E) ID { //nolint:ireturn // valid use of generics
	idField := reflect.ValueOf(entity).FieldByName(repo.idFieldName)
	if !idField.IsValid() {
		panic("entity does not have the field with name: " + repo.idFieldName)
	}

	var id ID

	dst := reflect.ValueOf(&id).Elem()

	switch idField.Kind() {
	case reflect.String:
		dst.SetString(idField.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(idField.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(idField.Uint())
	default:
		panic(panicIDNotSupported + idField.Kind().String())
	}

	return id
}

func (repo *MemoryRepository[E, ID]) setID(entity *E, id ID) {
	idField := reflect.ValueOf(entity).Elem().FieldByName(repo.idFieldName)
	if !idField.IsValid() || !idField.CanSet() {
		panic("entity does not have a settable field with name: " + repo.idFieldName)
	}

	idField.Set(reflect.ValueOf(id).Convert(idField.Type()))
}

// indexOf returns the position of the entity with the given id or -1.
// The caller has to hold the lock.
func (repo *MemoryRepository[E, ID]) indexOf(id ID) int {
	return slices.IndexFunc(repo.data, func(e E) bool {
		return repo.getID(e) == id
	})
}

// nextID returns the highest id plus one, or one if the repository is empty.
// String ids are random UUIDs.
// The caller has to hold the lock.
func (repo *MemoryRepository[E, ID]) nextID() ID { //nolint:ireturn // valid use of generics
	var (
		id    ID
		maxID ID
	)

	for _, e := range repo.data {
		maxID = max(maxID, repo.getID(e))
	}

	dst := reflect.ValueOf(&id).Elem()

	switch dst.Kind() {
	case reflect.String:
		dst.SetString(uuid.New().String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(reflect.ValueOf(maxID).Int() + 1)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(reflect.ValueOf(maxID).Uint() + 1)
	default:
		panic(panicIDNotSupported + dst.Kind().String())
	}

	return id
}

// NextID returns the id the next entity would get by Create.
// Prefer Create, as a call to Add in between can take the returned id.
func (repo *MemoryRepository[E, ID]) NextID(_ context.Context) (ID, error) { //nolint:ireturn // valid use of generics
	repo.Lock()
	defer repo.Unlock()

	return repo.nextID(), nil
}

// Add stores the entity with its given id.
func (repo *MemoryRepository[E, ID]) Add(_ context.Context, entity E) error {
	repo.Lock()
	defer repo.Unlock()

	return repo.add(entity)
}

func (repo *MemoryRepository[E, ID]) add(entity E) error {
	id := repo.getID(entity)
	if id == *new(ID) {
		return fmt.Errorf("missing ID: %w", ErrSaveFailed)
	}

	if repo.indexOf(id) != -1 {
		return ErrAlreadyExists
	}

	repo.data = append(repo.data, entity)

	return nil
}

// AddAll stores all entities or none, if one of them can not be added.
func (repo *MemoryRepository[E, ID]) AddAll(_ context.Context, entities []E) error {
	repo.Lock()
	defer repo.Unlock()

	before := len(repo.data)

	for _, e := range entities {
		if err := repo.add(e); err != nil {
			repo.data = repo.data[:before]

			return err
		}
	}

	return nil
}

// Create assigns the next id to entity and stores it, in one step.
// It returns the entity as stored.
func (repo *MemoryRepository[E, ID]) Create(_ context.Context, entity E) (E, error) { //nolint:ireturn // valid use of generics
	repo.Lock()
	defer repo.Unlock()

	repo.setID(&entity, repo.nextID())

	if err := repo.add(entity); err != nil {
		return *new(E), err
	}

	return entity, nil
}

// Update overwrites an existing entity.
func (repo *MemoryRepository[E, ID]) Update(_ context.Context, entity E) error {
	repo.Lock()
	defer repo.Unlock()

	i := repo.indexOf(repo.getID(entity))
	if i == -1 {
		return fmt.Errorf("entity does not exist yet: %w", ErrNotFound)
	}

	repo.data[i] = entity

	return nil
}

// Save updates an existing entity or adds it, if it does not exist yet.
func (repo *MemoryRepository[E, ID]) Save(_ context.Context, entity E) error {
	repo.Lock()
	defer repo.Unlock()

	if i := repo.indexOf(repo.getID(entity)); i != -1 {
		repo.data[i] = entity

		return nil
	}

	return repo.add(entity)
}

// All returns all entities in insertion order.
func (repo *MemoryRepository[E, ID]) All(_ context.Context) ([]E, error) {
	repo.Lock()
	defer repo.Unlock()

	return slices.Clone(repo.data), nil
}

func (repo *MemoryRepository[E, ID]) FindByID(_ context.Context, id ID) (E, error) { //nolint:ireturn // valid use of generics
	repo.Lock()
	defer repo.Unlock()

	if i := repo.indexOf(id); i != -1 {
		return repo.data[i], nil
	}

	return *new(E), ErrNotFound
}

func (repo *MemoryRepository[E, ID]) ExistsByID(_ context.Context, id ID) (bool, error) {
	repo.Lock()
	defer repo.Unlock()

	return repo.indexOf(id) != -1, nil
}

func (repo *MemoryRepository[E, ID]) Count(_ context.Context) (int, error) {
	repo.Lock()
	defer repo.Unlock()

	return len(repo.data), nil
}

// DeleteByID removes the entity. Deleting an unknown id is not an error.
func (repo *MemoryRepository[E, ID]) DeleteByID(_ context.Context, id ID) error {
	repo.Lock()
	defer repo.Unlock()

	repo.data = slices.DeleteFunc(repo.data, func(e E) bool {
		return repo.getID(e) == id
	})

	return nil
}

func (repo *MemoryRepository[E, ID]) DeleteAll(_ context.Context) error {
	repo.Lock()
	defer repo.Unlock()

	repo.data = []E{}

	return nil
}

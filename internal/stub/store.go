// Package stub is an in-memory marketplace API used for local
// development and integration tests. It mirrors the remote contract,
// including its inconsistent response casings, so the client's
// normalization is exercised end to end. Nothing here persists.
package stub

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrUsernameTaken    = errors.New("username already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type User struct {
	ID           int
	Username     string
	PasswordHash []byte
}

type Category struct {
	ID   int
	Name string
}

type Item struct {
	ID         int
	Name       string
	Price      float64
	ImageURL   string
	CategoryID int
	OwnerID    int
}

// CartRow is a cart line joined with its item.
type CartRow struct {
	ItemID   int
	Name     string
	Qty      int
	Price    float64
	ImageURL string
	Category string
}

// Store holds all marketplace state behind one lock.
type Store struct {
	mu         sync.RWMutex
	users      map[string]*User
	nextUserID int
	categories []Category
	items      map[int]*Item
	nextItemID int
	carts      map[int]map[int]int // userID -> itemID -> qty
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]*User),
		nextUserID: 1,
		items:      make(map[int]*Item),
		nextItemID: 1,
		carts:      make(map[int]map[int]int),
	}
}

// Seed loads a small demo catalog.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = []Category{
		{ID: 1, Name: "Home"},
		{ID: 2, Name: "Electronics"},
		{ID: 3, Name: "Books"},
	}
	for _, item := range []Item{
		{Name: "Lamp", Price: 500, CategoryID: 1},
		{Name: "Desk Fan", Price: 1250, CategoryID: 1},
		{Name: "Headphones", Price: 2999, CategoryID: 2},
		{Name: "Paperback", Price: 350, CategoryID: 3},
	} {
		item.ID = s.nextItemID
		s.nextItemID++
		copied := item
		s.items[copied.ID] = &copied
	}
}

func (s *Store) CreateUser(username string, passwordHash []byte) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, ErrUsernameTaken
	}
	user := &User{ID: s.nextUserID, Username: username, PasswordHash: passwordHash}
	s.nextUserID++
	s.users[username] = user
	return user, nil
}

func (s *Store) FindUser(username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[username]
	if !exists {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) CategoryByName(name string) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return Category{}, ErrCategoryNotFound
}

func (s *Store) categoryName(id int) string {
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// ItemFilter narrows the item listing. Price bounds apply only when
// both are set, matching the remote contract.
type ItemFilter struct {
	CategoryID *int
	MinPrice   *float64
	MaxPrice   *float64
	OwnerID    *int
}

func (s *Store) Items(f ItemFilter) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Item
	for _, item := range s.items {
		if f.CategoryID != nil && item.CategoryID != *f.CategoryID {
			continue
		}
		if f.MinPrice != nil && f.MaxPrice != nil &&
			(item.Price < *f.MinPrice || item.Price > *f.MaxPrice) {
			continue
		}
		if f.OwnerID != nil && item.OwnerID != *f.OwnerID {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ItemCategoryName(item Item) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoryName(item.CategoryID)
}

func (s *Store) CreateItem(item Item) Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextItemID
	s.nextItemID++
	stored := item
	s.items[stored.ID] = &stored
	return stored
}

func (s *Store) UpdateItem(id int, apply func(*Item)) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		return Item{}, ErrItemNotFound
	}
	apply(item)
	return *item, nil
}

func (s *Store) DeleteItem(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}

// AddToCart merges qty into an existing line for the same item.
func (s *Store) AddToCart(userID, itemID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[itemID]; !exists {
		return ErrItemNotFound
	}
	if s.carts[userID] == nil {
		s.carts[userID] = make(map[int]int)
	}
	s.carts[userID][itemID] += qty
	return nil
}

func (s *Store) RemoveFromCart(userID, itemID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts[userID], itemID)
}

func (s *Store) CartRows(userID int) []CartRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []CartRow
	for itemID, qty := range s.carts[userID] {
		item, exists := s.items[itemID]
		if !exists {
			continue
		}
		rows = append(rows, CartRow{
			ItemID:   item.ID,
			Name:     item.Name,
			Qty:      qty,
			Price:    item.Price,
			ImageURL: item.ImageURL,
			Category: s.categoryName(item.CategoryID),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemID < rows[j].ItemID })
	return rows
}

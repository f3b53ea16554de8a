package profile

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("empty display name")
	ErrEmptyListName = errors.New("empty collection name")
	ErrUnknownList   = errors.New("unknown collection")
	ErrSystemList    = errors.New("system collections cannot be deleted")
)

type View string

const (
	ViewBooks   View = "books"
	ViewAuthors View = "authors"
)

const (
	ListAll       = "all"
	ListFavorites = "favorites"
	ListReading   = "reading"
)

type List struct {
	ID     string
	Name   string
	Custom bool
}

var SystemLists = []List{
	{ID: ListAll, Name: "All Books"},
	{ID: ListFavorites, Name: "Favorites"},
	{ID: ListReading, Name: "Reading List"},
}

// State is the UI state of one profile page: selected list and view plus
// the edit toggles. Custom lists live only as long as the page.
type State struct {
	Custom       []List
	Current      string
	View         View
	EditingName  bool
	EditingLists bool
}

func NewState() State {
	return State{Current: ListAll, View: ViewBooks}
}

func (s State) Lists() []List {
	out := make([]List, 0, len(SystemLists)+len(s.Custom))
	out = append(out, SystemLists...)
	return append(out, s.Custom...)
}

func (s State) find(id string) (List, bool) {
	for _, l := range s.Lists() {
		if l.ID == id {
			return l, true
		}
	}
	return List{}, false
}

func (s State) CurrentListName() string {
	if l, ok := s.find(s.Current); ok {
		return l.Name
	}
	return "Unknown"
}

func (s *State) ToggleNameEdit() { s.EditingName = !s.EditingName }
func (s *State) ToggleListEdit() { s.EditingLists = !s.EditingLists }

// CreateList appends a custom list and closes the list editor.
func (s *State) CreateList(name string) (List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return List{}, ErrEmptyListName
	}
	l := List{ID: "custom_" + uuid.NewString(), Name: name, Custom: true}
	s.Custom = append(s.Custom, l)
	s.EditingLists = false
	return l, nil
}

// DeleteList removes a custom list. Deleting the selected list selects "all".
func (s *State) DeleteList(id string) error {
	l, ok := s.find(id)
	if !ok {
		return ErrUnknownList
	}
	if !l.Custom {
		return ErrSystemList
	}
	kept := s.Custom[:0:0]
	for _, c := range s.Custom {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.Custom = kept
	if s.Current == id {
		s.Current = ListAll
	}
	return nil
}

func (s *State) SelectList(id string) error {
	if _, ok := s.find(id); !ok {
		return ErrUnknownList
	}
	s.Current = id
	return nil
}

func (s *State) SwitchView(v View) bool {
	if v != ViewBooks && v != ViewAuthors {
		return false
	}
	s.View = v
	return true
}

// Package table holds the session state machine over the in-memory lead
// collection: filtering, sorting, inline edit, delete.
package table

import (
	"sort"

	"github.com/rotisserie/eris"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lead-mapper/leadmapper-cli/internal/model"
)

// SortField names a sortable lead field.
type SortField string

const (
	SortBusinessName      SortField = "businessName"
	SortAddress           SortField = "address"
	SortCategory          SortField = "category"
	SortPhone             SortField = "phone"
	SortWebsite           SortField = "website"
	SortEmail             SortField = "email"
	SortNotes             SortField = "notes"
	SortRating            SortField = "rating"
	SortHasWebsite        SortField = "hasWebsite"
	SortDateAdded         SortField = "dateAdded"
	SortPotentialScore    SortField = "potentialScore"
	SortPotentialCategory SortField = "potentialCategory"
)

// SortDirection is the sort order.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// EditPolicy decides what happens when an edit starts while another row is
// already being edited.
type EditPolicy string

const (
	// EditLastWins silently cancels the open edit; its unsaved changes are
	// lost.
	EditLastWins EditPolicy = "last_wins"
	// EditRejectDirty refuses the new edit until the open one is submitted
	// or cancelled.
	EditRejectDirty EditPolicy = "reject_dirty"
)

// ParseEditPolicy maps a configured policy name onto an EditPolicy. Unknown
// names are an error rather than an implicit last-wins.
func ParseEditPolicy(s string) (EditPolicy, error) {
	switch p := EditPolicy(s); p {
	case EditLastWins, EditRejectDirty:
		return p, nil
	default:
		return "", eris.Errorf("table: unknown edit policy %q (last_wins, reject_dirty)", s)
	}
}

// Filters are the predicate filters applied to the view. They combine with
// AND semantics; a zero-value field imposes no constraint.
type Filters struct {
	PotentialCategory model.PotentialCategory
	HasWebsite        *bool
	HasEmail          *bool
	HasPhone          *bool
	MinRating         *float64
}

var (
	ErrNotFound       = eris.New("table: lead not found")
	ErrEditInProgress = eris.New("table: another edit is in progress")
	ErrNoEdit         = eris.New("table: no edit in progress for this lead")
)

// Controller owns the authoritative lead collection and the view state.
// All mutation happens on the caller's goroutine; it is not safe for
// concurrent use.
type Controller struct {
	leads    []model.Lead
	filters  Filters
	sortKey  SortField
	sortDir  SortDirection
	policy   EditPolicy
	coll     *collate.Collator
	editID   string
	snapshot *model.Lead
}

// Option configures the controller.
type Option func(*Controller)

// WithEditPolicy selects the concurrent-edit policy.
func WithEditPolicy(p EditPolicy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

// WithLocale sets the collation locale for string sorting.
func WithLocale(tag language.Tag) Option {
	return func(c *Controller) {
		c.coll = collate.New(tag)
	}
}

// New creates a Controller with the default sort (business name, ascending)
// and the last-wins edit policy.
func New(opts ...Option) *Controller {
	c := &Controller{
		sortKey: SortBusinessName,
		sortDir: Asc,
		policy:  EditLastWins,
		coll:    collate.New(language.English),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetLeads replaces the whole collection, as a completed search does. Any
// open edit refers to the old batch and is cancelled.
func (c *Controller) SetLeads(leads []model.Lead) {
	c.leads = make([]model.Lead, len(leads))
	copy(c.leads, leads)
	c.CancelEdit()
}

// Leads returns a copy of the authoritative, unfiltered collection.
func (c *Controller) Leads() []model.Lead {
	out := make([]model.Lead, len(c.leads))
	copy(out, c.leads)
	return out
}

// SetFilters replaces the active predicate filters.
func (c *Controller) SetFilters(f Filters) {
	c.filters = f
}

// ResetFilters clears every predicate filter.
func (c *Controller) ResetFilters() {
	c.filters = Filters{}
}

// Filters returns the active predicate filters.
func (c *Controller) Filters() Filters {
	return c.filters
}

// SortBy sorts by the given field. Selecting the current field flips the
// direction; selecting a new field resets to ascending.
func (c *Controller) SortBy(field SortField) {
	if field == c.sortKey {
		if c.sortDir == Asc {
			c.sortDir = Desc
		} else {
			c.sortDir = Asc
		}
		return
	}
	c.sortKey = field
	c.sortDir = Asc
}

// SetSort sets the sort field and direction explicitly.
func (c *Controller) SetSort(field SortField, dir SortDirection) {
	c.sortKey = field
	c.sortDir = dir
}

// Sort returns the current sort field and direction.
func (c *Controller) Sort() (SortField, SortDirection) {
	return c.sortKey, c.sortDir
}

// View returns the filtered, sorted projection of the collection. Filtering
// happens first; the sort is stable, so leads that compare equal keep their
// relative collection order.
func (c *Controller) View() []model.Lead {
	var out []model.Lead
	for _, l := range c.leads {
		if c.matches(l) {
			out = append(out, l)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := c.compare(&out[i], &out[j])
		if c.sortDir == Desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// BeginEdit snapshots the lead and marks it as the row being edited. At most
// one row is editable at a time; what happens to an already-open edit is
// decided by the edit policy.
func (c *Controller) BeginEdit(id string) (model.Lead, error) {
	if c.editID != "" && c.editID != id {
		if c.policy == EditRejectDirty {
			return model.Lead{}, ErrEditInProgress
		}
		c.CancelEdit()
	}

	for _, l := range c.leads {
		if l.ID == id {
			snap := l
			c.editID = id
			c.snapshot = &snap
			return snap, nil
		}
	}
	return model.Lead{}, ErrNotFound
}

// Editing returns the id of the row currently in edit mode, or "".
func (c *Controller) Editing() string {
	return c.editID
}

// SubmitEdit replaces the edited lead wholesale (all fields, not a diff) and
// exits edit mode. The submitted lead must carry the id passed to BeginEdit.
func (c *Controller) SubmitEdit(lead model.Lead) error {
	if c.editID == "" || lead.ID != c.editID {
		return ErrNoEdit
	}
	for i := range c.leads {
		if c.leads[i].ID == lead.ID {
			c.leads[i] = lead
			c.editID = ""
			c.snapshot = nil
			return nil
		}
	}
	// Row deleted out from under the edit.
	c.editID = ""
	c.snapshot = nil
	return ErrNotFound
}

// CancelEdit discards the snapshot without mutating the collection.
func (c *Controller) CancelEdit() {
	c.editID = ""
	c.snapshot = nil
}

// Delete removes a lead by id immediately. A missing id is a no-op.
func (c *Controller) Delete(id string) {
	for i := range c.leads {
		if c.leads[i].ID == id {
			c.leads = append(c.leads[:i], c.leads[i+1:]...)
			if c.editID == id {
				c.CancelEdit()
			}
			return
		}
	}
}

func (c *Controller) matches(l model.Lead) bool {
	f := c.filters
	if f.PotentialCategory != "" && l.PotentialCategory != f.PotentialCategory {
		return false
	}
	if f.HasWebsite != nil && l.HasWebsite != *f.HasWebsite {
		return false
	}
	if f.HasEmail != nil && (l.Email != "") != *f.HasEmail {
		return false
	}
	if f.HasPhone != nil && (l.Phone != "") != *f.HasPhone {
		return false
	}
	// Min rating constrains only rated leads; unrated ones pass.
	if f.MinRating != nil && l.Rating != nil && *l.Rating < *f.MinRating {
		return false
	}
	return true
}

// compare orders two leads on the current sort field: strings via the
// collator, numbers numerically, booleans with false before true. A nullable
// field missing on either side compares equal.
func (c *Controller) compare(a, b *model.Lead) int {
	switch c.sortKey {
	case SortBusinessName:
		return c.coll.CompareString(a.BusinessName, b.BusinessName)
	case SortAddress:
		return c.coll.CompareString(a.Address, b.Address)
	case SortCategory:
		return c.coll.CompareString(a.Category, b.Category)
	case SortPhone:
		return c.coll.CompareString(a.Phone, b.Phone)
	case SortWebsite:
		return c.coll.CompareString(a.Website, b.Website)
	case SortEmail:
		return c.coll.CompareString(a.Email, b.Email)
	case SortNotes:
		return c.coll.CompareString(a.Notes, b.Notes)
	case SortDateAdded:
		return c.coll.CompareString(a.DateAdded, b.DateAdded)
	case SortPotentialCategory:
		return c.coll.CompareString(string(a.PotentialCategory), string(b.PotentialCategory))
	case SortRating:
		return compareFloatPtr(a.Rating, b.Rating)
	case SortPotentialScore:
		return compareIntPtr(a.PotentialScore, b.PotentialScore)
	case SortHasWebsite:
		return compareBool(a.HasWebsite, b.HasWebsite)
	default:
		return 0
	}
}

func compareFloatPtr(a, b *float64) int {
	if a == nil || b == nil {
		return 0
	}
	switch {
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func compareIntPtr(a, b *int) int {
	if a == nil || b == nil {
		return 0
	}
	switch {
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

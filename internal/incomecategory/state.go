package incomecategory

import (
	"fjacquet/income-categories/internal/models"
	"fjacquet/income-categories/internal/validation"
)

// DefaultLimit is the page size used until the server reports another.
const DefaultLimit = 10

// State is everything the income category screens render from.
type State struct {
	CurrentPage      int                     `json:"current_page" yaml:"current_page"`
	TotalPages       int                     `json:"total_pages" yaml:"total_pages"`
	Limit            int                     `json:"limit" yaml:"limit"`
	QName            string                  `json:"q_name" yaml:"q_name"`
	IncomeCategories []models.IncomeCategory `json:"income_categories" yaml:"income_categories"`
	EditID           *int64                  `json:"edit_income_category_id" yaml:"edit_income_category_id"`
	ViewID           *int64                  `json:"view_income_category_id" yaml:"view_income_category_id"`
	AddErrors        validation.FieldErrors  `json:"add_income_category_errors" yaml:"add_income_category_errors"`
	EditErrors       validation.FieldErrors  `json:"edit_income_category_errors" yaml:"edit_income_category_errors"`
	CurrentItem      models.IncomeCategory   `json:"current_income_category_item" yaml:"current_income_category_item"`
}

// InitialState returns the state a fresh store starts from.
func InitialState() State {
	return State{
		CurrentPage:      1,
		TotalPages:       0,
		Limit:            DefaultLimit,
		IncomeCategories: []models.IncomeCategory{},
		AddErrors:        validation.FieldErrors{},
		EditErrors:       validation.FieldErrors{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.IncomeCategories = append([]models.IncomeCategory{}, s.IncomeCategories...)
	out.EditID = cloneID(s.EditID)
	out.ViewID = cloneID(s.ViewID)
	out.AddErrors = s.AddErrors.Clone()
	out.EditErrors = s.EditErrors.Clone()
	return out
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// Pagination is the payload of SetPagination.
type Pagination struct {
	TotalPages  int
	CurrentPage int
	Limit       int
	QName       string
}

// The transitions below are pure: they never modify the state they are given.

// Reset clears the form item and both error maps together.
func Reset(s State) State {
	s.CurrentItem = models.IncomeCategory{}
	s.AddErrors = validation.FieldErrors{}
	s.EditErrors = validation.FieldErrors{}
	return s
}

// SetList replaces the displayed categories.
func SetList(s State, list []models.IncomeCategory) State {
	s.IncomeCategories = append([]models.IncomeCategory{}, list...)
	return s
}

// SetPagination replaces paging and filter values. Out-of-range values are
// clamped: current page to 1, total pages to 0, and a non-positive limit keeps
// the previous one.
func SetPagination(s State, p Pagination) State {
	s.TotalPages = max(p.TotalPages, 0)
	s.CurrentPage = max(p.CurrentPage, 1)
	if p.Limit > 0 {
		s.Limit = p.Limit
	}
	s.QName = p.QName
	return s
}

// SetCurrentPage moves to page without touching the other paging values.
func SetCurrentPage(s State, page int) State {
	s.CurrentPage = max(page, 1)
	return s
}

// SetCurrentItem replaces the record loaded into the form.
func SetCurrentItem(s State, item models.IncomeCategory) State {
	s.CurrentItem = item
	return s
}

// SetAddErrors replaces the add form's field errors.
func SetAddErrors(s State, fe validation.FieldErrors) State {
	s.AddErrors = fe.Clone()
	return s
}

// SetEditErrors replaces the edit form's field errors.
func SetEditErrors(s State, fe validation.FieldErrors) State {
	s.EditErrors = fe.Clone()
	return s
}

// SelectForEdit records the record targeted by the edit form.
func SelectForEdit(s State, id int64) State {
	s.EditID = &id
	return s
}

// SelectForView records the record being viewed.
func SelectForView(s State, id int64) State {
	s.ViewID = &id
	return s
}

package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gorm.io/gorm"
)

// AcronymMaxLen matches the width of the companies.acronym column.
const AcronymMaxLen = 10

var (
	ErrAcronymTooLong  = errors.New("derived acronym exceeds 10 characters")
	ErrAcronymReadOnly = errors.New("acronym is derived from the name and cannot be written on its own")
)

type Company struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:200;not null"`
	Acronym string `gorm:"size:10;not null"`
}

func NewCompany(name string) *Company {
	c := &Company{}
	c.SetName(name)
	return c
}

// SetName is the only supported way to change a company name: the acronym
// follows it on every write.
func (c *Company) SetName(name string) {
	c.Name = name
	c.Acronym = DeriveAcronym(name)
}

// BeforeSave keeps the acronym tied to the name on every write path:
// Create and Save use the record itself, Update and Updates use the values
// being written. Writing an acronym without a name is refused.
func (c *Company) BeforeSave(tx *gorm.DB) error {
	stmt := tx.Statement

	switch dest := stmt.Dest.(type) {
	case map[string]interface{}:
		name, hasName := lookup(dest, "name", "Name")
		_, hasAcronym := lookup(dest, "acronym", "Acronym")
		if !hasName {
			if hasAcronym {
				return ErrAcronymReadOnly
			}
			return nil
		}
		s, ok := name.(string)
		if !ok {
			return fmt.Errorf("company name must be a string, got %T", name)
		}
		acronym, err := acronymFor(s)
		if err != nil {
			return err
		}
		delete(dest, "Acronym")
		dest["acronym"] = acronym
		return nil
	case Company:
		return setFromUpdate(stmt, &dest)
	case *Company:
		if dest != c {
			return setFromUpdate(stmt, dest)
		}
	}

	acronym, err := acronymFor(c.Name)
	if err != nil {
		return err
	}
	c.Acronym = acronym
	return nil
}

// setFromUpdate handles Updates with a struct, which writes non-zero fields only.
func setFromUpdate(stmt *gorm.Statement, upd *Company) error {
	if upd.Name == "" {
		if upd.Acronym != "" {
			return ErrAcronymReadOnly
		}
		return nil
	}
	acronym, err := acronymFor(upd.Name)
	if err != nil {
		return err
	}
	stmt.SetColumn("Acronym", acronym)
	return nil
}

func acronymFor(name string) (string, error) {
	acronym := DeriveAcronym(name)
	if utf8.RuneCountInString(acronym) > AcronymMaxLen {
		return "", ErrAcronymTooLong
	}
	return acronym, nil
}

func lookup(m map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func (c Company) String() string {
	return c.Name + " - " + c.Acronym
}

// DeriveAcronym takes the first character of every run of word characters
// (letters, digits, underscore) and upper-cases the result.
func DeriveAcronym(name string) string {
	var b strings.Builder
	inWord := false
	for _, r := range name {
		if isWordRune(r) {
			if !inWord {
				b.WriteRune(r)
			}
			inWord = true
			continue
		}
		inWord = false
	}
	return strings.ToUpper(b.String())
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

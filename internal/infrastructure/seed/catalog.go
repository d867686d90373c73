// Package seed loads the franchise catalog (stores, categories, menus) from a CSV file.
//
// One record per line, first field is the kind:
//
//	store,<code>,<name>
//	category,<id>,<name>[,<state>]
//	menu,<code>,<name>,<category id>,<price>
//
// Lines starting with # are skipped. Files exported from the head-office POS are often Shift_JIS.
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nagane/franchise-api/internal/domain/entity"
)

// Catalog is the parsed file. IDs of stores and menus follow file order starting at 1.
type Catalog struct {
	Stores     []entity.Store
	Categories []entity.Category
	Menus      []entity.Menu
}

// Decoder wraps r so that it yields UTF-8. Supported: utf-8 (or empty), shift_jis, euc-jp.
// A leading byte-order mark is dropped from UTF-8 input.
func Decoder(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "-", "_")) {
	case "", "utf8", "utf_8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case "shift_jis", "sjis":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	case "euc_jp", "eucjp":
		return transform.NewReader(r, japanese.EUCJP.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("seed: unsupported charset %q", charset)
	}
}

// Parse reads a catalog in the given charset.
func Parse(r io.Reader, charset string) (*Catalog, error) {
	dec, err := Decoder(r, charset)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var c Catalog
	categories := make(map[int64]bool)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("seed: read: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if err := c.add(rec, categories); err != nil {
			return nil, fmt.Errorf("seed: line %d: %w", line, err)
		}
	}
	for _, m := range c.Menus {
		if !categories[m.CategoryID] {
			return nil, fmt.Errorf("seed: menu %s references unknown category %d", m.Code, m.CategoryID)
		}
	}
	sort.Slice(c.Categories, func(i, j int) bool { return c.Categories[i].ID < c.Categories[j].ID })
	return &c, nil
}

func (c *Catalog) add(rec []string, categories map[int64]bool) error {
	switch strings.ToLower(rec[0]) {
	case "store":
		if len(rec) != 3 {
			return fmt.Errorf("store needs code and name")
		}
		c.Stores = append(c.Stores, entity.Store{
			ID:   int64(len(c.Stores) + 1),
			Code: rec[1],
			Name: rec[2],
		})
	case "category":
		if len(rec) != 3 && len(rec) != 4 {
			return fmt.Errorf("category needs id and name")
		}
		id, err := strconv.ParseInt(rec[1], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("category id %q", rec[1])
		}
		state := entity.CategoryActive
		if len(rec) == 4 {
			if state, err = strconv.Atoi(rec[3]); err != nil {
				return fmt.Errorf("category state %q", rec[3])
			}
		}
		if categories[id] {
			return fmt.Errorf("duplicate category %d", id)
		}
		categories[id] = true
		c.Categories = append(c.Categories, entity.Category{ID: id, Name: rec[2], State: state})
	case "menu":
		if len(rec) != 5 {
			return fmt.Errorf("menu needs code, name, category and price")
		}
		categoryID, err := strconv.ParseInt(rec[3], 10, 64)
		if err != nil {
			return fmt.Errorf("menu category %q", rec[3])
		}
		price, err := decimal.NewFromString(rec[4])
		if err != nil || price.IsNegative() {
			return fmt.Errorf("menu price %q", rec[4])
		}
		c.Menus = append(c.Menus, entity.Menu{
			ID:         int64(len(c.Menus) + 1),
			CategoryID: categoryID,
			Code:       rec[1],
			Name:       rec[2],
			Price:      price,
		})
	default:
		return fmt.Errorf("unknown kind %q", rec[0])
	}
	return nil
}

// SQL renders idempotent inserts for the postgres schema, with explicit ids and sequence resets.
func (c *Catalog) SQL() string {
	var b strings.Builder
	b.WriteString("BEGIN;\n")
	for _, s := range c.Stores {
		fmt.Fprintf(&b, "INSERT INTO stores (id, store_code, store_name) VALUES (%d, %s, %s) ON CONFLICT DO NOTHING;\n",
			s.ID, quote(s.Code), quote(s.Name))
	}
	for _, cat := range c.Categories {
		fmt.Fprintf(&b, "INSERT INTO categories (id, category_name, category_state) VALUES (%d, %s, %d) ON CONFLICT DO NOTHING;\n",
			cat.ID, quote(cat.Name), cat.State)
	}
	for _, m := range c.Menus {
		fmt.Fprintf(&b, "INSERT INTO menus (id, category_id, menu_code, menu_name, price) VALUES (%d, %d, %s, %s, %s) ON CONFLICT DO NOTHING;\n",
			m.ID, m.CategoryID, quote(m.Code), quote(m.Name), m.Price.String())
	}
	for _, t := range []string{"stores", "categories", "menus"} {
		fmt.Fprintf(&b, "SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false);\n", t, t)
	}
	b.WriteString("COMMIT;\n")
	return b.String()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Target receives the catalog; *memory.DB satisfies it.
type Target interface {
	SeedStore(entity.Store) int64
	SeedCategory(entity.Category) int64
	SeedMenu(entity.Menu) int64
}

// Apply loads the catalog into t.
func (c *Catalog) Apply(t Target) {
	for _, s := range c.Stores {
		t.SeedStore(s)
	}
	for _, cat := range c.Categories {
		t.SeedCategory(cat)
	}
	for _, m := range c.Menus {
		t.SeedMenu(m)
	}
}

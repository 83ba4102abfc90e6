package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathjourney/internal/drills"
)

//go:embed lessons.yaml
var defaultLessons []byte

type fileDoc struct {
	Lessons []lessonDoc `yaml:"lessons"`
}

type lessonDoc struct {
	Number      int         `yaml:"number"`
	Title       string      `yaml:"title"`
	Icon        string      `yaml:"icon"`
	Description string      `yaml:"description"`
	MaxPoints   int         `yaml:"max_points"`
	Warmup      []promptDoc `yaml:"warmup"`
	Store       *storeDoc   `yaml:"store"`
	Angles      *anglesDoc  `yaml:"angles"`
}

type promptDoc struct {
	Text     string `yaml:"text"`
	Category string `yaml:"category"`
}

type storeDoc struct {
	Supply *struct {
		Tens int `yaml:"tens"`
		Ones int `yaml:"ones"`
	} `yaml:"supply"`
	Orders []struct {
		Customer string `yaml:"customer"`
		Quantity int    `yaml:"quantity"`
	} `yaml:"orders"`
}

type anglesDoc struct {
	Starts          []int    `yaml:"starts"`
	HouseParts      []string `yaml:"house_parts"`
	CompletionBonus int      `yaml:"completion_bonus"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultLessons))
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load parses and validates a YAML catalog document.
func Load(r io.Reader) (*Catalog, error) {
	var doc fileDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Lessons) == 0 {
		return nil, errors.New("catalog has no lessons")
	}

	seen := make(map[int]bool)
	lessons := make([]Lesson, 0, len(doc.Lessons))
	for _, ld := range doc.Lessons {
		if seen[ld.Number] {
			return nil, fmt.Errorf("lesson %d: duplicate number", ld.Number)
		}
		seen[ld.Number] = true

		l, err := ld.build()
		if err != nil {
			return nil, fmt.Errorf("lesson %d: %w", ld.Number, err)
		}
		lessons = append(lessons, l)
	}
	return New(lessons), nil
}

func (ld lessonDoc) build() (Lesson, error) {
	if ld.Title == "" {
		return Lesson{}, errors.New("missing title")
	}
	l := Lesson{
		Number:      ld.Number,
		Title:       ld.Title,
		Icon:        ld.Icon,
		Description: ld.Description,
		MaxPoints:   ld.MaxPoints,
	}

	for i, pd := range ld.Warmup {
		cat := drills.Category(pd.Category)
		if !cat.Valid() {
			return Lesson{}, fmt.Errorf("warmup %d: unknown category %q", i+1, pd.Category)
		}
		p, err := drills.NewPrompt(pd.Text, cat)
		if err != nil {
			return Lesson{}, fmt.Errorf("warmup %d: %w", i+1, err)
		}
		l.Content.Warmup = append(l.Content.Warmup, p)
	}

	if sd := ld.Store; sd != nil && len(sd.Orders) > 0 {
		supply := drills.DefaultSupply
		if sd.Supply != nil {
			supply = drills.Supply{Tens: sd.Supply.Tens, Ones: sd.Supply.Ones}
		}
		sc := &StoreContent{Supply: supply}
		for i, od := range sd.Orders {
			if od.Customer == "" {
				return Lesson{}, fmt.Errorf("order %d: missing customer", i+1)
			}
			if od.Quantity <= 0 || !supply.Covers(od.Quantity) {
				return Lesson{}, fmt.Errorf("order %d: %d apples cannot be made from %d baskets and %d singles",
					i+1, od.Quantity, supply.Tens, supply.Ones)
			}
			sc.Orders = append(sc.Orders, drills.Order{Customer: od.Customer, Quantity: od.Quantity})
		}
		l.Content.Store = sc
	}

	if ad := ld.Angles; ad != nil && len(ad.Starts) > 0 {
		if len(ad.HouseParts) == 0 {
			return Lesson{}, errors.New("angles: house_parts is empty")
		}
		if ad.CompletionBonus < 0 {
			return Lesson{}, errors.New("angles: completion_bonus is negative")
		}
		for i, s := range ad.Starts {
			if s%drills.AngleStep != 0 {
				return Lesson{}, fmt.Errorf("angles: start %d (%d°) is not a multiple of %d", i+1, s, drills.AngleStep)
			}
		}
		l.Content.Angles = &AngleContent{
			Starts:          ad.Starts,
			HouseParts:      ad.HouseParts,
			CompletionBonus: ad.CompletionBonus,
		}
	}

	if l.MaxPoints == 0 {
		l.MaxPoints = l.Content.PerfectScore()
	}
	return l, nil
}

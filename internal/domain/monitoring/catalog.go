package monitoring

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind identifica el tipo de monitor.
type Kind string

const (
	KindObject  Kind = "object"
	KindEmotion Kind = "emotion"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindObject:
		return KindObject, nil
	case KindEmotion:
		return KindEmotion, nil
	default:
		return "", ErrUnknownKind
	}
}

// Range es un intervalo cerrado de confianza, en porcentaje.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Category es una fila de la tabla de configuración del generador.
type Category struct {
	Name       string  `yaml:"name" json:"name"`
	Weight     float64 `yaml:"weight" json:"weight"`
	Hazardous  bool    `yaml:"hazardous" json:"hazardous"`
	Confidence Range   `yaml:"confidence" json:"confidence"`
}

// Catalog describe qué puede emitir un monitor y cada cuánto.
type Catalog struct {
	Period     time.Duration `yaml:"period"`
	Categories []Category    `yaml:"categories"`
	// Reasons se sortea solo para categorías peligrosas.
	Reasons []string `yaml:"reasons"`
}

// Catalogs indexa los catálogos por tipo de monitor.
type Catalogs map[Kind]Catalog

func (c Catalog) Names() []string {
	out := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		out = append(out, cat.Name)
	}
	return out
}

func (c Catalog) Validate() error {
	if c.Period <= 0 {
		return errors.New("catalog: period must be > 0")
	}
	if len(c.Categories) == 0 {
		return errors.New("catalog: at least one category required")
	}
	seen := map[string]struct{}{}
	total := 0.0
	hazardous := false
	for _, cat := range c.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return errors.New("catalog: category name required")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("catalog: duplicate category %q", name)
		}
		seen[name] = struct{}{}
		if cat.Weight < 0 {
			return fmt.Errorf("catalog: category %q has negative weight", name)
		}
		if cat.Confidence.Min < 0 || cat.Confidence.Max > 100 || cat.Confidence.Min > cat.Confidence.Max {
			return fmt.Errorf("catalog: category %q confidence must satisfy 0 <= min <= max <= 100", name)
		}
		total += cat.Weight
		hazardous = hazardous || cat.Hazardous
	}
	if total <= 0 {
		return errors.New("catalog: weights must add up to > 0")
	}
	if hazardous && len(c.Reasons) == 0 {
		return errors.New("catalog: hazardous categories need at least one reason")
	}
	return nil
}

// DefaultCatalogs son las tablas fijas con las que arranca el servicio si no hay archivo.
func DefaultCatalogs() Catalogs {
	return Catalogs{
		KindObject: {
			Period: 2 * time.Second,
			Categories: []Category{
				{Name: "Baby", Weight: 3, Confidence: Range{Min: 90, Max: 100}},
				{Name: "Blanket", Weight: 2, Confidence: Range{Min: 85, Max: 98}},
				{Name: "Toy", Weight: 2, Confidence: Range{Min: 75, Max: 95}},
				{Name: "Pillow", Weight: 1, Confidence: Range{Min: 80, Max: 95}},
				{Name: "Small Object", Weight: 1, Hazardous: true, Confidence: Range{Min: 70, Max: 95}},
				{Name: "Sharp Object", Weight: 0.5, Hazardous: true, Confidence: Range{Min: 70, Max: 90}},
				{Name: "Plastic Bag", Weight: 0.5, Hazardous: true, Confidence: Range{Min: 70, Max: 92}},
			},
			Reasons: []string{
				"Potential hazard detected near baby",
				"Choking hazard within reach",
				"Suffocation risk near the face",
			},
		},
		KindEmotion: {
			Period: 3 * time.Second,
			Categories: []Category{
				{Name: "happy", Weight: 1, Confidence: Range{Min: 70, Max: 100}},
				{Name: "calm", Weight: 1, Confidence: Range{Min: 70, Max: 100}},
				{Name: "crying", Weight: 1, Hazardous: true, Confidence: Range{Min: 70, Max: 100}},
				{Name: "fussy", Weight: 1, Confidence: Range{Min: 70, Max: 100}},
				{Name: "sleeping", Weight: 1, Confidence: Range{Min: 70, Max: 100}},
			},
			Reasons: []string{
				"Hunger - Feeding time may be due",
				"Discomfort - Check diaper or temperature",
				"Tiredness - Baby may need sleep",
				"Temperature - Room may be too hot/cold",
				"Gas/Colic - Digestive discomfort",
			},
		},
	}
}

// LoadCatalogs lee un YAML con claves "object"/"emotion". Las claves ausentes
// conservan el catálogo por defecto.
//
//	object:
//	  period: 2s
//	  categories:
//	    - {name: Baby, weight: 3, confidence: {min: 90, max: 100}}
//	  reasons: ["..."]
func LoadCatalogs(path string) (Catalogs, error) {
	out := DefaultCatalogs()
	if strings.TrimSpace(path) == "" {
		return out, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return ParseCatalogs(raw)
}

func ParseCatalogs(raw []byte) (Catalogs, error) {
	out := DefaultCatalogs()

	var file map[string]Catalog
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}

	for name, c := range file {
		kind, err := ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("catalog: unknown monitor kind %q", name)
		}
		if c.Period == 0 {
			c.Period = out[kind].Period
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%s %w", kind, err)
		}
		out[kind] = c
	}
	return out, nil
}

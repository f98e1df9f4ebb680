package monitoring

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogsAreValid(t *testing.T) {
	for kind, c := range DefaultCatalogs() {
		assert.NoError(t, c.Validate(), "kind %s", kind)
	}
}

func TestParseCatalogs_OverridesOneKind(t *testing.T) {
	raw := []byte(`
emotion:
  period: 500ms
  categories:
    - name: calm
      weight: 2
      confidence: {min: 80, max: 90}
    - name: crying
      weight: 1
      hazardous: true
      confidence: {min: 70, max: 100}
  reasons: ["Hunger"]
`)
	cats, err := ParseCatalogs(raw)
	require.NoError(t, err)

	emo := cats[KindEmotion]
	assert.Equal(t, 500*time.Millisecond, emo.Period)
	assert.Equal(t, []string{"calm", "crying"}, emo.Names())

	// object conserva el default
	assert.Equal(t, DefaultCatalogs()[KindObject].Names(), cats[KindObject].Names())
}

func TestParseCatalogs_InheritsPeriod(t *testing.T) {
	cats, err := ParseCatalogs([]byte(`
object:
  categories:
    - {name: Baby, weight: 1, confidence: {min: 90, max: 100}}
`))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cats[KindObject].Period)
}

func TestParseCatalogs_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown kind":       "thermal:\n  categories: [{name: x, weight: 1}]\n",
		"no categories":      "object:\n  period: 1s\n",
		"duplicate":          "object:\n  categories: [{name: a, weight: 1}, {name: a, weight: 1}]\n",
		"bad range":          "object:\n  categories: [{name: a, weight: 1, confidence: {min: 90, max: 80}}]\n",
		"zero weights":       "object:\n  categories: [{name: a, weight: 0}]\n",
		"hazard w/o reasons": "object:\n  categories: [{name: a, weight: 1, hazardous: true}]\n",
		"not yaml":           "object: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalogs([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalogs_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("object:\n  period: 1s\n  categories: [{name: Toy, weight: 1, confidence: {min: 70, max: 80}}]\n"), 0o600))

	cats, err := LoadCatalogs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Toy"}, cats[KindObject].Names())

	def, err := LoadCatalogs("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalogs()[KindObject].Names(), def[KindObject].Names())

	_, err = LoadCatalogs(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

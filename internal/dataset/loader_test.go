package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJSON_ValidPool(t *testing.T) {
	path := writeTempFile(t, "pool.json", `[
		{"id": "r1", "text": "golang engineer"},
		{"id": "r2", "text": "python developer", "aux": {"source": "import"}}
	]`)

	pool, err := LoadJSON(path)
	require.NoError(t, err)

	require.Len(t, pool, 2)
	assert.Equal(t, "r1", pool[0].ID)
	assert.Equal(t, "golang engineer", pool[0].Text)
	assert.Equal(t, "import", pool[1].Aux["source"])
}

func TestLoadJSON_MissingFile(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume pool")
}

func TestLoadJSON_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, "bad.json", `{not json`)

	_, err := LoadJSON(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse resume pool JSON")
}

func TestLoadJSON_EmptyIDRejected(t *testing.T) {
	path := writeTempFile(t, "pool.json", `[{"id": "", "text": "something"}]`)

	_, err := LoadJSON(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty id")
}

func TestLoadJSON_EmptyTextRejected(t *testing.T) {
	path := writeTempFile(t, "pool.json", `[{"id": "r1", "text": "   "}]`)

	_, err := LoadJSON(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty text")
}

func TestLoadJSON_DuplicateIDsRejected(t *testing.T) {
	path := writeTempFile(t, "pool.json", `[
		{"id": "r1", "text": "first"},
		{"id": "r1", "text": "second"}
	]`)

	_, err := LoadJSON(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate resume id r1")
}

func TestLoadCSV_ValidPool(t *testing.T) {
	path := writeTempFile(t, "pool.csv",
		"id,text,label\nr1,golang engineer,strong\nr2,python developer,weak\n")

	pool, err := LoadCSV(path, "id", "text")
	require.NoError(t, err)

	require.Len(t, pool, 2)
	assert.Equal(t, "r1", pool[0].ID)
	assert.Equal(t, "golang engineer", pool[0].Text)
	assert.Equal(t, "strong", pool[0].Aux["label"])
	assert.Equal(t, "weak", pool[1].Aux["label"])
}

func TestLoadCSV_SequentialIDsWhenNoIDColumn(t *testing.T) {
	path := writeTempFile(t, "pool.csv", "text\ngolang engineer\npython developer\n")

	pool, err := LoadCSV(path, "", "text")
	require.NoError(t, err)

	require.Len(t, pool, 2)
	assert.Equal(t, "resume_000", pool[0].ID)
	assert.Equal(t, "resume_001", pool[1].ID)
}

func TestLoadCSV_MissingTextColumn(t *testing.T) {
	path := writeTempFile(t, "pool.csv", "id,body\nr1,golang\n")

	_, err := LoadCSV(path, "id", "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `text column "text" not found`)
}

func TestLoadCSV_MissingIDColumn(t *testing.T) {
	path := writeTempFile(t, "pool.csv", "text\ngolang\n")

	_, err := LoadCSV(path, "id", "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `id column "id" not found`)
}

func TestLoadCSV_HeaderNamesTrimmed(t *testing.T) {
	path := writeTempFile(t, "pool.csv", " id , text \nr1,golang engineer\n")

	pool, err := LoadCSV(path, "id", "text")
	require.NoError(t, err)

	require.Len(t, pool, 1)
	assert.Equal(t, "r1", pool[0].ID)
}

func TestLoadJobDescription_Trimmed(t *testing.T) {
	path := writeTempFile(t, "job.txt", "\n  Senior Go engineer, distributed systems.  \n\n")

	query, err := LoadJobDescription(path)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go engineer, distributed systems.", query)
}

func TestLoadJobDescription_MissingFile(t *testing.T) {
	_, err := LoadJobDescription(filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
}

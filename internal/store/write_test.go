package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_WritesHeaderAndFirstRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.csv")
	st := openTestStore(t, path, "id", "name")

	mustCreate(t, st, Values{"id": "1", "name": "Ada"})

	assert.Equal(t, "id,name\n1,Ada\n", readTestFile(t, path))
}

func TestCreate_RoundTrip(t *testing.T) {
	st := newTestStore(t, "id", "col1")
	rec := Values{"id": "1", "col1": "a"}
	mustCreate(t, st, rec)

	got, err := st.Retrieve("1", "id")
	require.NoError(t, err)
	assert.Equal(t, Record{"id": "1", "col1": "a"}, got)
}

func TestCreate_StringifiesValues(t *testing.T) {
	st := newTestStore(t, "id", "col1")
	mustCreate(t, st, Values{"id": 1, "col1": 2})

	got, err := st.Retrieve("1", "id")
	require.NoError(t, err)
	assert.Equal(t, Record{"id": "1", "col1": "2"}, got)
}

func TestCreate_NilValueBecomesEmptyString(t *testing.T) {
	st := newTestStore(t, "id", "note")
	mustCreate(t, st, Values{"id": "1", "note": nil})

	got, err := st.Retrieve("1", "id")
	require.NoError(t, err)
	assert.Equal(t, "", got["note"])
}

func TestCreate_MissingField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.csv")
	st := openTestStore(t, path, "id", "col1")

	err := st.Create(Values{"id": "1"})
	require.Error(t, err)
	assert.Equal(t, CodeMissingFields, CodeOf(err))
	assert.EqualError(t, err, "record is missing the following fields: 'col1'")

	// No write happened: the file was never created.
	_, serr := os.Stat(path)
	assert.True(t, os.IsNotExist(serr))
}

func TestCreate_MissingFields_SchemaOrder(t *testing.T) {
	st := newTestStore(t, "id", "a", "b")

	err := st.Create(Values{"id": "1"})
	require.Error(t, err)
	assert.EqualError(t, err, "record is missing the following fields: 'a', 'b'")
}

func TestCreate_MissingFields_ExistingFileUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.csv")
	st := openTestStore(t, path, "id", "name")
	mustCreate(t, st, Values{"id": "1", "name": "Ada"})
	before := readTestFile(t, path)

	err := st.Create(Values{"id": "2"})
	require.Error(t, err)
	assert.Equal(t, before, readTestFile(t, path))
}

func TestCreate_ExtraFieldsDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.csv")
	st := openTestStore(t, path, "id", "name")

	mustCreate(t, st, Values{"id": "1", "name": "Ada", "age": "36"})

	assert.Equal(t, "id,name\n1,Ada\n", readTestFile(t, path))
}

func TestCreate_DuplicatesAppended(t *testing.T) {
	st := newTestStore(t, "id", "name")
	mustCreate(t, st, Values{"id": "1", "name": "Ada"})
	mustCreate(t, st, Values{"id": "1", "name": "Ada"})

	recs, err := st.Query(nil)
	require.NoError(t, err)
	assert.Len(t, recs, 2, "no uniqueness check on any field")
}

func TestCreate_AppendsInFileHeaderOrder(t *testing.T) {
	// The store is opened with a permuted (set-equal) schema; appended rows
	// must follow the file's own header order, not the declared order.
	path := filepath.Join(t.TempDir(), "db.csv")
	writeTestFile(t, path, "id,name\n1,Ada\n")

	st := openTestStore(t, path, "name", "id")
	mustCreate(t, st, Values{"id": "2", "name": "Grace"})

	assert.Equal(t, "id,name\n1,Ada\n2,Grace\n", readTestFile(t, path))
}

func TestCreate_QuotesEmbeddedDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.csv")
	st := openTestStore(t, path, "id", "name")

	mustCreate(t, st, Values{"id": "1", "name": "Hopper, Grace"})

	assert.Equal(t, "id,name\n1,\"Hopper, Grace\"\n", readTestFile(t, path))

	got, err := st.Retrieve("1", "id")
	require.NoError(t, err)
	assert.Equal(t, "Hopper, Grace", got["name"])
}

func TestUpdate_ReplacesFirstMatch(t *testing.T) {
	st := newTestStore(t, "id", "name")
	mustCreate(t, st, Values{"id": "1", "name": "first"})
	mustCreate(t, st, Values{"id": "1", "name": "second"})
	mustCreate(t, st, Values{"id": "2", "name": "other"})

	require.NoError(t, st.Update("1", "id", Values{"id": "1", "name": "replaced"}))

	recs, err := st.Query(nil)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, Record{"id": "1", "name": "replaced"}, recs[0])
	assert.Equal(t, Record{"id": "1", "name": "second"}, recs[1], "only the first match is replaced")
	assert.Equal(t, Record{"id": "2", "name": "other"}, recs[2])
}

func TestUpdate_PreservesDuplicateOfOldContent(t *testing.T) {
	// A record equal to the replaced one's old content must survive the
	// rewrite untouched: replacement is by position, not content.
	st := newTestStore(t, "id", "name")
	mustCreate(t, st, Values{"id": "1", "name": "same"})
	mustCreate(t, st, Values{"id": "1", "name": "same"})

	require.NoError(t, st.Update("1", "id", Values{"id": "9", "name": "new"}))

	recs, err := st.Query(nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, Record{"id": "9", "name": "new"}, recs[0])
	assert.Equal(t, Record{"id": "1", "name": "same"}, recs[1])
}

func TestUpdate_UnknownField(t *testing.T) {
	st := newTestStore(t, "id", "name")

	err := st.Update("1", "email", Values{"id": "1", "name": "Ada"})
	require.Error(t, err)
	assert.Equal(t, CodeLookup, CodeOf(err))
	assert.EqualError(t, err, "'email' does not define a field in the database")
}

func TestUpdate_NoMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.csv")
	st := openTestStore(t, path, "id", "name")
	mustCreate(t, st, Values{"id": "1", "name": "Ada"})
	before := readTestFile(t, path)

	err := st.Update("42", "id", Values{"id": "42", "name": "nobody"})
	require.Error(t, err)
	assert.Equal(t, CodeLookup, CodeOf(err))
	assert.EqualError(t, err, "could not find record with id = 42")

	assert.Equal(t, before, readTestFile(t, path), "failed update leaves the file byte-identical")
}

func TestUpdate_EmptyTable(t *testing.T) {
	st := newTestStore(t, "id", "name")

	err := st.Update("1", "id", Values{"id": "1", "name": "Ada"})
	require.Error(t, err)
	assert.Equal(t, CodeLookup, CodeOf(err))
}

func TestUpdate_MissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.csv")
	st := openTestStore(t, path, "id", "name")
	mustCreate(t, st, Values{"id": "1", "name": "Ada"})
	before := readTestFile(t, path)

	err := st.Update("1", "id", Values{"id": "1"})
	require.Error(t, err)
	assert.Equal(t, CodeMissingFields, CodeOf(err))
	assert.Equal(t, before, readTestFile(t, path))
}

func TestUpdate_StringifiesMatchValue(t *testing.T) {
	st := newTestStore(t, "id", "name")
	mustCreate(t, st, Values{"id": 7, "name": "Ada"})

	require.NoError(t, st.Update(7, "id", Values{"id": 7, "name": "Grace"}))

	rec, err := st.Retrieve("7", "id")
	require.NoError(t, err)
	assert.Equal(t, "Grace", rec["name"])
}

func TestUpdate_KeepsFileHeaderOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.csv")
	writeTestFile(t, path, "id,name\n1,Ada\n")

	st := openTestStore(t, path, "name", "id")
	require.NoError(t, st.Update("1", "id", Values{"id": "1", "name": "Grace"}))

	assert.Equal(t, "id,name\n1,Grace\n", readTestFile(t, path))
}

func TestCreateSequence_QueryReturnsAllInOrder(t *testing.T) {
	st := newTestStore(t, "id", "name", "role")
	want := []Record{
		{"id": "1", "name": "Ada", "role": "admin"},
		{"id": "2", "name": "Grace", "role": "user"},
		{"id": "3", "name": "Radia", "role": "user"},
	}
	for _, r := range want {
		mustCreate(t, st, Values{"id": r["id"], "name": r["name"], "role": r["role"]})
	}

	recs, err := st.Query(nil)
	require.NoError(t, err)
	require.Len(t, recs, len(want))
	for i := range want {
		assert.Equal(t, want[i], recs[i])
	}
}

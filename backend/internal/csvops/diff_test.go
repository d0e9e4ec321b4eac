package csvops_test

import (
	"errors"
	"testing"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/csvops"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/types"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nameCol = csvops.DefaultNameColumn

func roster(names ...string) types.TableData {
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{n})
	}
	return types.TableData{HasHeader: true, Header: []string{nameCol}, Rows: rows}
}

func TestDiff(t *testing.T) {
	t.Parallel()

	t.Run("added and removed", func(t *testing.T) {
		t.Parallel()

		old := roster("Alice Tan", "Bob Lee")
		updated := roster("ALICE TAN", "Carol Ng")

		res, err := csvops.Diff(old, updated, nameCol)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"Carol Ng"}}, res.Added.Rows)
		assert.Equal(t, [][]string{{"Bob Lee"}}, res.Removed.Rows)
		assert.Equal(t, []string{nameCol}, res.Added.Header)
		assert.Equal(t, []string{nameCol}, res.Removed.Header)
	})

	t.Run("same names with different casing and spacing", func(t *testing.T) {
		t.Parallel()

		old := roster("Alice Tan", "bob  lee", " Carol Ng ")
		updated := roster("carol ng", "ALICE\tTAN", "Bob Lee")

		res, err := csvops.Diff(old, updated, nameCol)
		require.NoError(t, err)
		assert.Empty(t, res.Added.Rows)
		assert.Empty(t, res.Removed.Rows)
	})

	t.Run("duplicates of an added name are all kept", func(t *testing.T) {
		t.Parallel()

		old := roster("Alice Tan")
		updated := roster("Dan Koh", "Alice Tan", "dan koh")

		res, err := csvops.Diff(old, updated, nameCol)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"Dan Koh"}, {"dan koh"}}, res.Added.Rows)
	})

	t.Run("blank names are never classified", func(t *testing.T) {
		t.Parallel()

		old := roster("", "   ", "Alice Tan")
		updated := roster("Alice Tan", "\t", "")

		res, err := csvops.Diff(old, updated, nameCol)
		require.NoError(t, err)
		assert.Empty(t, res.Added.Rows)
		assert.Empty(t, res.Removed.Rows)
	})

	t.Run("missing cells read as blank", func(t *testing.T) {
		t.Parallel()

		old := types.TableData{Header: []string{"Id", nameCol}, Rows: [][]string{{"1"}, {"2", "Bob Lee"}}}
		updated := types.TableData{Header: []string{nameCol, "Id"}, Rows: [][]string{{"", "9"}}}

		res, err := csvops.Diff(old, updated, nameCol)
		require.NoError(t, err)
		assert.Empty(t, res.Added.Rows)
		assert.Equal(t, [][]string{{"2", "Bob Lee"}}, res.Removed.Rows)
	})

	t.Run("all columns of the source are kept", func(t *testing.T) {
		t.Parallel()

		old := types.TableData{
			Header: []string{"Vendor", nameCol, "Role"},
			Rows:   [][]string{{"Acme", "Bob Lee", "Driver"}},
		}
		updated := types.TableData{
			Header: []string{nameCol, "Company"},
			Rows:   [][]string{{"Carol Ng", "Globex"}},
		}

		res, err := csvops.Diff(old, updated, nameCol)
		require.NoError(t, err)
		assert.Equal(t, updated.Header, res.Added.Header)
		assert.Equal(t, [][]string{{"Carol Ng", "Globex"}}, res.Added.Rows)
		assert.Equal(t, old.Header, res.Removed.Header)
		assert.Equal(t, [][]string{{"Acme", "Bob Lee", "Driver"}}, res.Removed.Rows)
	})

	t.Run("results do not alias inputs", func(t *testing.T) {
		t.Parallel()

		old := roster("Bob Lee")
		updated := roster("Carol Ng")

		res, err := csvops.Diff(old, updated, nameCol)
		require.NoError(t, err)
		res.Added.Rows[0][0] = "changed"
		res.Removed.Header[0] = "changed"
		assert.Equal(t, "Carol Ng", updated.Rows[0][0])
		assert.Equal(t, nameCol, old.Header[0])
	})
}

func TestDiffMissingColumn(t *testing.T) {
	t.Parallel()

	good := roster("Alice Tan")
	bad := types.TableData{Header: []string{"Name"}, Rows: [][]string{{"Alice Tan"}}}
	wrongCase := types.TableData{Header: []string{"full name as per nric"}, Rows: [][]string{{"Alice Tan"}}}

	tests := []struct {
		name     string
		old      types.TableData
		updated  types.TableData
		datasets []string
	}{
		{name: "old lacks column", old: bad, updated: good, datasets: []string{csvops.DatasetOld}},
		{name: "new lacks column", old: good, updated: bad, datasets: []string{csvops.DatasetNew}},
		{name: "both lack column", old: bad, updated: wrongCase, datasets: []string{csvops.DatasetOld, csvops.DatasetNew}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			res, err := csvops.Diff(test.old, test.updated, nameCol)
			require.Error(t, err)

			var missing *csvops.MissingColumnError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, nameCol, missing.Column)
			assert.Equal(t, test.datasets, missing.Datasets)
			assert.Empty(t, res.Added.Rows)
			assert.Empty(t, res.Removed.Rows)
		})
	}
}

func TestDiffRequiresNameColumn(t *testing.T) {
	t.Parallel()

	_, err := csvops.Diff(roster("a"), roster("b"), "")
	require.ErrorIs(t, err, csvops.ErrNameColumnRequired)
}

func TestDiffProperties(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(2024)
	pool := make([]string, 40)
	for i := range pool {
		pool[i] = faker.Name()
	}
	pool = append(pool, "", "  ")

	pick := func() types.TableData {
		n := faker.Number(0, 30)
		names := make([]string, n)
		for i := range names {
			names[i] = messUp(faker, pool[faker.Number(0, len(pool)-1)])
		}
		return roster(names...)
	}

	for round := 0; round < 200; round++ {
		old, updated := pick(), pick()

		res, err := csvops.Diff(old, updated, nameCol)
		require.NoError(t, err)

		oldKeys := csvops.NewKeySet(csvops.NormalizeColumn(old, 0))
		newKeys := csvops.NewKeySet(csvops.NormalizeColumn(updated, 0))

		// disjointness and empty-name exclusion
		for _, r := range res.Added.Rows {
			k := csvops.NormalizeName(r[0])
			assert.NotEmpty(t, k)
			assert.False(t, oldKeys.Has(k), "added %q is present in old", k)
		}
		for _, r := range res.Removed.Rows {
			k := csvops.NormalizeName(r[0])
			assert.NotEmpty(t, k)
			assert.False(t, newKeys.Has(k), "removed %q is present in new", k)
		}

		// cardinality: added + unchanged == non-empty rows of new, and symmetric
		assert.Equal(t, nonEmptyRows(updated), len(res.Added.Rows)+countIn(updated, oldKeys))
		assert.Equal(t, nonEmptyRows(old), len(res.Removed.Rows)+countIn(old, newKeys))

		// order preservation
		assert.True(t, isSubsequence(res.Added.Rows, updated.Rows))
		assert.True(t, isSubsequence(res.Removed.Rows, old.Rows))
	}
}

func nonEmptyRows(tbl types.TableData) int {
	n := 0
	for _, r := range tbl.Rows {
		if csvops.NormalizeName(r[0]) != "" {
			n++
		}
	}
	return n
}

func countIn(tbl types.TableData, keys csvops.KeySet) int {
	n := 0
	for _, r := range tbl.Rows {
		if keys.Has(csvops.NormalizeName(r[0])) {
			n++
		}
	}
	return n
}

func isSubsequence(sub, full [][]string) bool {
	j := 0
	for i := 0; i < len(full) && j < len(sub); i++ {
		if equalRow(sub[j], full[i]) {
			j++
		}
	}
	return j == len(sub)
}

func equalRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package compiler

import (
	"context"
	stderrors "errors"
	"html"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/algowiki/internal/config"
	"git.home.luguber.info/inful/algowiki/internal/discovery"
	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
	"git.home.luguber.info/inful/algowiki/internal/links"
	"git.home.luguber.info/inful/algowiki/internal/metrics"
	"git.home.luguber.info/inful/algowiki/internal/testutil"
)

const rustSource = `fn insertion_sort<T: Ord>(a: &mut [T]) {
    for i in 1..a.len() {
        let mut j = i;
        while j > 0 && a[j - 1] > a[j] {
            a.swap(j - 1, j);
            j -= 1;
        }
    }
}
`

// testConfig returns a config whose classifier maps rs and py and whose
// output goes to a fresh directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	csv := filepath.Join(dir, "file_extensions.csv")
	require.NoError(t, os.WriteFile(csv, []byte("rs, Rust\npy, Python\n"), 0o600))

	cfg := config.Default()
	cfg.ClassifierFile = csv
	cfg.Output.Directory = filepath.Join(dir, "out")
	return cfg
}

func insertionSortTree() map[string]string {
	return map[string]string{
		"sorting/insertion_sort/insertion_sort.toml": testutil.Descriptor("Insertion Sort", "Algorithm", "sorting/insertion_sort",
			`categories = ["Sorting"]`),
		"sorting/insertion_sort/insertion_sort.md": "Builds the sorted array *one item at a time*.\n",
		"sorting/insertion_sort/insertion_sort.rs": rustSource,
		"sorting/sorting.toml": testutil.Descriptor("Sorting", "Category", "sorting",
			`subpages = ["Insertion Sort"]`),
	}
}

func readOutput(t *testing.T, cfg *config.Config, rel string) string {
	t.Helper()
	return testutil.NewFileAssertions(t, cfg.Output.Directory).Read(rel)
}

func stripTags(s string) string {
	var b strings.Builder
	in := false
	for _, r := range s {
		switch {
		case r == '<':
			in = true
		case r == '>':
			in = false
		case !in:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestRunInsertionSort(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, insertionSortTree())
	cfg := testConfig(t)

	report, err := New(cfg).Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.NotEmpty(t, report.BuildID)
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 1, report.Implementations)
	assert.Equal(t, 2, report.FilesWritten)
	assert.Empty(t, report.BrokenLinks)
	assert.Equal(t, map[string]int{"Algorithm": 1, "Category": 1}, report.RenderedPages)
	for _, st := range []StageName{StageLoadClassifier, StageDiscoverPages, StageBuildLinks, StageRenderPages, StageVerifyLinks, StageWriteOutput} {
		assert.Equal(t, StageResultSuccess, report.StageResults[st], st)
	}
	assert.NotContains(t, report.StageResults, StageCopyStatic)

	doc := readOutput(t, cfg, "sorting/insertion_sort.html")
	assert.Contains(t, doc, "<em>one item at a time</em>")
	assert.Contains(t, doc, `Categories: <a href="/sorting.html">Sorting</a>`)
	assert.Contains(t, doc, `data-tab="implementations">Implementations</button>`)

	start := strings.Index(doc, "<h3>Rust</h3>")
	require.GreaterOrEqual(t, start, 0)
	block := doc[start:]
	block = block[:strings.Index(block, "</div>")]
	assert.Contains(t, html.UnescapeString(stripTags(block)), rustSource)

	cat := readOutput(t, cfg, "sorting.html")
	assert.Contains(t, cat, `<li><a href="/sorting/insertion_sort.html">Insertion Sort</a></li>`)
}

func TestRunIsDeterministic(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, insertionSortTree())

	cfg1 := testConfig(t)
	cfg2 := testConfig(t)
	cfg2.Build.Workers = 1
	_, err := New(cfg1).Run(context.Background(), root)
	require.NoError(t, err)
	_, err = New(cfg2).Run(context.Background(), root)
	require.NoError(t, err)

	for _, rel := range []string{"sorting.html", "sorting/insertion_sort.html"} {
		assert.Equal(t, readOutput(t, cfg1, rel), readOutput(t, cfg2, rel), rel)
	}
}

func TestRunDuplicateTitleWritesNothing(t *testing.T) {
	root := t.TempDir()
	files := insertionSortTree()
	files["other/other.toml"] = "title = \"Sorting\"\npage_type = \"Category\"\nurl = \"other\"\n"
	testutil.WriteTree(t, root, files)
	cfg := testConfig(t)

	report, err := New(cfg).Run(context.Background(), root)
	require.ErrorIs(t, err, discovery.ErrDuplicateTitle)
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.Equal(t, StageResultFatal, report.StageResults[StageDiscoverPages])
	assert.NotContains(t, report.StageResults, StageRenderPages)
	assert.NoDirExists(t, cfg.Output.Directory)
}

func TestRunOutputCollision(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"a/a.toml": "title = \"A\"\npage_type = \"Category\"\nurl = \"same\"\n",
		"b/b.toml": "title = \"B\"\npage_type = \"Category\"\nurl = \"same\"\n",
	})

	_, err := New(testConfig(t)).Run(context.Background(), root)
	require.ErrorIs(t, err, links.ErrOutputCollision)
	assert.True(t, errors.HasCategory(err, errors.CategoryResolution))
}

func TestRunUnresolvedReferenceAborts(t *testing.T) {
	root := t.TempDir()
	files := insertionSortTree()
	files["sorting/sorting.toml"] = "title = \"Sorting\"\npage_type = \"Category\"\nurl = \"sorting\"\nsubpages = [\"Insertion Sort\", \"Bogo Sort\"]\n"
	testutil.WriteTree(t, root, files)
	cfg := testConfig(t)

	report, err := New(cfg).Run(context.Background(), root)
	require.ErrorIs(t, err, links.ErrUnresolvedReference)
	assert.Contains(t, err.Error(), "Bogo Sort")
	var se *StageError
	require.True(t, stderrors.As(err, &se))
	assert.Equal(t, StageRenderPages, se.Stage)
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.NoDirExists(t, cfg.Output.Directory)
}

func TestRunUnknownLanguageAborts(t *testing.T) {
	root := t.TempDir()
	files := insertionSortTree()
	files["sorting/insertion_sort/insertion_sort.xyz"] = "???"
	testutil.WriteTree(t, root, files)
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.ClassifierFile, []byte("rs,Rust\nxyz,Xyzzy Script\n"), 0o600))

	_, err := New(cfg).Run(context.Background(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Xyzzy Script")
	assert.Contains(t, err.Error(), "Insertion Sort")
}

func TestRunGenericPolicy(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"about/about.toml": "title = \"About\"\npage_type = \"Generic\"\nurl = \"about\"\n",
	})

	cfg := testConfig(t)
	report, err := New(cfg).Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesWritten)
	testutil.NewFileAssertions(t, cfg.Output.Directory).AssertFileEmpty("about.html")

	cfg = testConfig(t)
	cfg.Build.GenericPages = config.GenericReject
	_, err = New(cfg).Run(context.Background(), root)
	assert.ErrorIs(t, err, discovery.ErrGenericRejected)
}

func TestRunBrokenLinks(t *testing.T) {
	root := t.TempDir()
	files := insertionSortTree()
	files["sorting/insertion_sort/insertion_sort.md"] = "See [merge sort](/sorting/merge_sort.html).\n"
	testutil.WriteTree(t, root, files)

	cfg := testConfig(t)
	report, err := New(cfg).Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWarning, report.Outcome)
	assert.Equal(t, StageResultWarning, report.StageResults[StageVerifyLinks])
	require.Len(t, report.BrokenLinks, 1)
	assert.Equal(t, "/sorting/merge_sort.html", report.BrokenLinks[0].Target)
	assert.FileExists(t, filepath.Join(cfg.Output.Directory, "sorting", "insertion_sort.html"))

	cfg = testConfig(t)
	cfg.Build.StrictLinks = true
	report, err = New(cfg).Run(context.Background(), root)
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.NoDirExists(t, cfg.Output.Directory)
}

func TestRunDuplicateLabelPolicy(t *testing.T) {
	root := t.TempDir()
	files := insertionSortTree()
	files["sorting/insertion_sort/a.py"] = "print('a')\n"
	files["sorting/insertion_sort/b.py"] = "print('b')\n"
	testutil.WriteTree(t, root, files)

	cfg := testConfig(t)
	report, err := New(cfg).Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Implementations)

	cfg = testConfig(t)
	cfg.Build.DuplicateLabels = config.DuplicateError
	_, err = New(cfg).Run(context.Background(), root)
	assert.Error(t, err)
}

func TestRunCopiesStaticDir(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, insertionSortTree())
	static := filepath.Join(t.TempDir(), "static")
	testutil.WriteTree(t, static, map[string]string{
		"style.css":  "body{}",
		"js/tabs.js": "// tabs",
	})

	cfg := testConfig(t)
	cfg.Output.StaticDir = static
	report, err := New(cfg).Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, StageResultSuccess, report.StageResults[StageCopyStatic])
	assert.Equal(t, "body{}", readOutput(t, cfg, "static/style.css"))
	assert.Equal(t, "// tabs", readOutput(t, cfg, "static/js/tabs.js"))
}

func TestRunMissingClassifier(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClassifierFile = filepath.Join(t.TempDir(), "missing.csv")

	report, err := New(cfg).Run(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Equal(t, StageResultFatal, report.StageResults[StageLoadClassifier])
	assert.Len(t, report.StageResults, 1)
}

func TestRunCanceled(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, insertionSortTree())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := New(testConfig(t)).Run(ctx, root)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, OutcomeCanceled, report.Outcome)
}

func TestRunZeroWorkersUsesDefaultPool(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, insertionSortTree())
	cfg := testConfig(t)
	cfg.Build.Workers = 0

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan struct{})
	var report *Report
	var err error
	go func() {
		defer close(done)
		report, err = New(cfg).Run(ctx, root)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("compile with zero workers did not finish")
	}
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.Equal(t, 2, report.TotalRendered())
}

func TestRenderWorkers(t *testing.T) {
	assert.Equal(t, 3, renderWorkers(3))
	assert.Equal(t, runtime.GOMAXPROCS(0), renderWorkers(0))
	assert.Equal(t, runtime.GOMAXPROCS(0), renderWorkers(-1))
}

type fakeRecorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	stages   map[string]metrics.ResultLabel
	pages    map[string]int
	impls    int
	outcomes []string
}

func (f *fakeRecorder) IncStageResult(stage string, r metrics.ResultLabel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stages[stage] = r
}

func (f *fakeRecorder) IncPagesRendered(pageType string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[pageType]++
}

func (f *fakeRecorder) AddImplementations(n int) { f.impls += n }

func (f *fakeRecorder) IncBuildOutcome(o string) { f.outcomes = append(f.outcomes, o) }

func TestRunRecordsMetrics(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, insertionSortTree())
	rec := &fakeRecorder{stages: map[string]metrics.ResultLabel{}, pages: map[string]int{}}

	_, err := New(testConfig(t), WithRecorder(rec)).Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Algorithm": 1, "Category": 1}, rec.pages)
	assert.Equal(t, 1, rec.impls)
	assert.Equal(t, []string{"success"}, rec.outcomes)
	assert.Equal(t, metrics.ResultSuccess, rec.stages[string(StageRenderPages)])
}

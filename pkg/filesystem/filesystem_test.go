//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package filesystem_test

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"syscall"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/seqfile/pkg/filesystem"
)

func listNames(g *WithT, scanner filesystem.FileScanner) []string {
	names := []string{}

	for {
		info, ok := scanner.Next()
		if !ok {
			break
		}

		names = append(names, info.Name)
	}

	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())

	return names
}

func TestRealFileSystem_CreateExclusive(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewRealFileSystem()
	path := filepath.Join(t.TempDir(), "run.0.log")

	claimed, err := fs.CreateExclusive(path)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(claimed).Should(BeTrue())

	info, err := os.Stat(path)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.Size()).Should(BeZero())

	// Second claim on the same path loses without an error
	claimed, err = fs.CreateExclusive(path)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(claimed).Should(BeFalse())
}

func TestRealFileSystem_CreateExclusive_DoesNotTouchExistingContent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewRealFileSystem()
	path := filepath.Join(t.TempDir(), "keep.txt")
	g.Expect(os.WriteFile(path, []byte("data"), 0o600)).To(Succeed())

	claimed, err := fs.CreateExclusive(path)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(claimed).Should(BeFalse())

	data, err := os.ReadFile(path)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).Should(Equal("data"))
}

func TestRealFileSystem_CreateExclusive_MissingParentIsAnError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewRealFileSystem()
	path := filepath.Join(t.TempDir(), "missing", "run.0.log")

	claimed, err := fs.CreateExclusive(path)
	g.Expect(claimed).Should(BeFalse())
	g.Expect(err).Should(HaveOccurred())
	g.Expect(errors.Is(err, os.ErrNotExist)).Should(BeTrue())

	var pathErr *os.PathError
	g.Expect(errors.As(err, &pathErr)).Should(BeTrue())
}

func TestRealFileSystem_CreateExclusive_ConcurrentCallersGetOneWinner(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewRealFileSystem()
	path := filepath.Join(t.TempDir(), "contended")

	const callers = 16

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)

	for range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			claimed, err := fs.CreateExclusive(path)
			if err != nil {
				t.Errorf("CreateExclusive failed: %v", err)
				return
			}

			if claimed {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	g.Expect(winners).Should(Equal(1))
}

func TestRealFileSystem_Exists(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewRealFileSystem()
	dir := t.TempDir()
	g.Expect(os.WriteFile(filepath.Join(dir, "a"), nil, 0o600)).To(Succeed())

	exists, err := fs.Exists(filepath.Join(dir, "a"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).Should(BeTrue())

	exists, err = fs.Exists(filepath.Join(dir, "b"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).Should(BeFalse())
}

func TestRealFileSystem_List_ReturnsDirectEntriesOnly(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewRealFileSystem()
	dir := t.TempDir()
	g.Expect(os.WriteFile(filepath.Join(dir, "a.0.txt"), nil, 0o600)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "a.1.txt"), nil, 0o600)).To(Succeed())
	g.Expect(os.MkdirAll(filepath.Join(dir, "sub", "deeper"), 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "sub", "a.9.txt"), nil, 0o600)).To(Succeed())

	names := listNames(g, fs.List(dir))
	sort.Strings(names)

	g.Expect(names).Should(Equal([]string{"a.0.txt", "a.1.txt", "sub"}))
}

func TestRealFileSystem_List_FollowsSymlinkedRoot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewRealFileSystem()
	base := t.TempDir()
	target := filepath.Join(base, "target")
	link := filepath.Join(base, "link")
	g.Expect(os.Mkdir(target, 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(target, "x.0"), nil, 0o600)).To(Succeed())

	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	g.Expect(listNames(g, fs.List(link))).Should(Equal([]string{"x.0"}))
}

func TestRealFileSystem_List_MissingDirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewRealFileSystem()
	scanner := fs.List(filepath.Join(t.TempDir(), "nope"))

	_, ok := scanner.Next()
	g.Expect(ok).Should(BeFalse())
	g.Expect(scanner.Err()).Should(HaveOccurred())
	g.Expect(errors.Is(scanner.Err(), os.ErrNotExist)).Should(BeTrue())
}

func TestRealFileSystem_List_FileIsNotADirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewRealFileSystem()
	file := filepath.Join(t.TempDir(), "plain")
	g.Expect(os.WriteFile(file, nil, 0o600)).To(Succeed())

	scanner := fs.List(file)
	_, ok := scanner.Next()
	g.Expect(ok).Should(BeFalse())
	g.Expect(scanner.Err()).Should(MatchError(ContainSubstring("not a directory")))
	g.Expect(errors.Is(scanner.Err(), syscall.ENOTDIR)).Should(BeTrue())
}

func TestMockFileSystem_CreateExclusive(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.MkdirAll("/data")

	claimed, err := fs.CreateExclusive("/data/a.0")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(claimed).Should(BeTrue())

	claimed, err = fs.CreateExclusive("/data/a.0")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(claimed).Should(BeFalse())
	g.Expect(fs.Creates()).Should(Equal(1))

	_, err = fs.CreateExclusive("/missing/a.0")
	g.Expect(errors.Is(err, os.ErrNotExist)).Should(BeTrue())
}

func TestMockFileSystem_FailCreate(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.MkdirAll("/data")
	fs.FailCreate("/data/a.0", os.ErrPermission)

	claimed, err := fs.CreateExclusive("/data/a.0")
	g.Expect(claimed).Should(BeFalse())
	g.Expect(errors.Is(err, os.ErrPermission)).Should(BeTrue())
}

func TestMockFileSystem_List(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/data/b")
	fs.AddFile("/data/a")
	fs.AddFile("/data/sub/c")

	g.Expect(listNames(g, fs.List("/data"))).Should(Equal([]string{"a", "b", "sub"}))

	g.Expect(listNames(g, fs.List("/data/sub"))).Should(Equal([]string{"c"}))

	scanner := fs.List("/nope")
	_, ok := scanner.Next()
	g.Expect(ok).Should(BeFalse())
	g.Expect(errors.Is(scanner.Err(), os.ErrNotExist)).Should(BeTrue())
}

func TestMockFileSystem_NameTransform(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	upper := func(s string) string {
		out := []rune(s)
		for i, r := range out {
			if r >= 'a' && r <= 'z' {
				out[i] = r - 'a' + 'A'
			}
		}

		return string(out)
	}

	fs := filesystem.NewMockFileSystem().WithNameTransform(upper)
	fs.MkdirAll("/data")

	claimed, err := fs.CreateExclusive("/data/run.0")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(claimed).Should(BeTrue())

	// Stored under the transformed name, found under either spelling
	g.Expect(listNames(g, fs.List("/data"))).Should(Equal([]string{"RUN.0"}))

	exists, err := fs.Exists("/data/run.0")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).Should(BeTrue())
}

package seqfile_test

import (
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // Dot import is idiomatic for Ginkgo DSL
	. "github.com/onsi/gomega"    //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/seqfile/pkg/filesystem"
	"github.com/joe/seqfile/pkg/seqfile"
)

const racers = 24

// race runs racers concurrent reservations of req and returns their paths.
func race(finder *seqfile.Finder, req seqfile.Request) []string {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		paths []string
	)

	start := make(chan struct{})

	for range racers {
		wg.Add(1)

		go func() {
			defer GinkgoRecover()
			defer wg.Done()

			<-start

			path, err := finder.Find(req)
			Expect(err).NotTo(HaveOccurred())

			mu.Lock()
			paths = append(paths, path)
			mu.Unlock()
		}()
	}

	close(start)
	wg.Wait()

	return paths
}

func expectedPaths(dir string, base int) []string {
	want := make([]string, 0, racers)
	for i := range racers {
		want = append(want, filepath.Join(dir, "mdl."+strconv.Itoa(base+i)+".cPickle"))
	}

	return want
}

var _ = Describe("Concurrent reservations", func() {
	var (
		dir    string
		finder *seqfile.Finder
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		finder = seqfile.NewFinder(filesystem.NewRealFileSystem())
	})

	Describe("with a prefix and suffix", func() {
		It("hands every caller a distinct, contiguous index", func() {
			req := seqfile.NewRequest(dir)
			req.Affix = &seqfile.Affix{Prefix: "mdl.", Suffix: ".cPickle"}
			req.MaxAttempts = racers

			paths := race(finder, req)

			Expect(paths).To(HaveLen(racers))
			Expect(paths).To(ConsistOf(expectedPaths(dir, 0)))
		})

		It("continues after the highest existing index", func() {
			_, err := seqfile.FindNextFile(seqfile.Request{
				Folder:      dir,
				Affix:       &seqfile.Affix{Prefix: "mdl.", Suffix: ".cPickle"},
				Base:        100,
				MaxAttempts: 1,
			})
			Expect(err).NotTo(HaveOccurred())

			req := seqfile.NewRequest(dir)
			req.Affix = &seqfile.Affix{Prefix: "mdl.", Suffix: ".cPickle"}
			req.MaxAttempts = racers

			Expect(race(finder, req)).To(ConsistOf(expectedPaths(dir, 101)))
		})
	})

	Describe("with a generator", func() {
		It("hands every caller a distinct, contiguous index", func() {
			req := seqfile.NewRequest(dir)
			req.Generator = func(index int) string { return "mdl." + strconv.Itoa(index) + ".cPickle" }
			req.MaxAttempts = racers

			Expect(race(finder, req)).To(ConsistOf(expectedPaths(dir, 0)))
		})
	})

	Describe("with a small attempt budget", func() {
		It("never hands out the same path twice", func() {
			req := seqfile.NewRequest(dir)
			req.Affix = &seqfile.Affix{Prefix: "mdl.", Suffix: ".cPickle"}
			req.MaxAttempts = 1

			var (
				wg   sync.WaitGroup
				mu   sync.Mutex
				seen = map[string]int{}
			)

			for range racers {
				wg.Add(1)

				go func() {
					defer GinkgoRecover()
					defer wg.Done()

					path, err := finder.Find(req)
					if err != nil {
						Expect(err).To(MatchError(seqfile.ErrExhausted))
						return
					}

					mu.Lock()
					seen[path]++
					mu.Unlock()
				}()
			}

			wg.Wait()

			Expect(seen).NotTo(BeEmpty())

			for path, count := range seen {
				Expect(count).To(Equal(1), "path %s handed out %d times", path, count)
			}
		})
	})
})

func TestConcurrentReservations(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Concurrent Reservations Suite")
}

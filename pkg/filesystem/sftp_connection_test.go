//nolint:varnamelen // Test files use idiomatic short variable names (t, etc.)
package filesystem_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/seqfile/pkg/filesystem"
)

// TestSFTPConnection_Connect_FailsForUnreachableHost verifies that a failed
// dial surfaces as an error rather than a half-built connection.
func TestSFTPConnection_Connect_FailsForUnreachableHost(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	conn, err := filesystem.Connect("nonexistent.invalid", 22, "testuser")

	g.Expect(conn).Should(BeNil(), "Connection should fail for invalid host")
	g.Expect(err).Should(HaveOccurred(), "Should return error for invalid host")
	// Without any key or agent the attempt stops before dialing
	g.Expect(err.Error()).Should(Or(
		ContainSubstring("SSH connection failed"),
		ContainSubstring("no SSH authentication methods available"),
		ContainSubstring("failed to load known hosts"),
	))
}

// TestCreateFileSystem_Local verifies local paths get the real filesystem
// and a usable no-op closer.
func TestCreateFileSystem_Local(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs, parsed, closer, err := filesystem.CreateFileSystem("/tmp/runs")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(fs).Should(BeAssignableToTypeOf(&filesystem.RealFileSystem{}))
	g.Expect(parsed.Dir()).Should(Equal("/tmp/runs"))
	g.Expect(closer).ShouldNot(BeNil())

	closer()
}

func TestCreateFileSystem_InvalidURL(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, _, _, err := filesystem.CreateFileSystem("sftp://hostonly/path")
	g.Expect(err).Should(MatchError(ContainSubstring("must include username")))
}

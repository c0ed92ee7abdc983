package version

import "testing"

func TestString(t *testing.T) {
    BuildNumber, GitCommit = "7", "unknown"
    if got := String(); got != "yuvsnap build 7" {
        t.Fatalf("String() = %q", got)
    }
    GitCommit = "abc123"
    if got := String(); got != "yuvsnap build 7 (abc123)" {
        t.Fatalf("String() = %q", got)
    }
}

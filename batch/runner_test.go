package batch

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RunnerTestSuite defines a test suite for the end-to-end batch runner.
type RunnerTestSuite struct {
	suite.Suite
	tempDir string
}

// SetupSuite disables colored output and skips on platforms without a
// POSIX shell.
func (s *RunnerTestSuite) SetupSuite() {
	if runtime.GOOS == "windows" {
		s.T().Skip("fake ffmpeg scripts require a POSIX shell")
	}
	originalNoColor := color.NoColor
	color.NoColor = true
	s.T().Cleanup(func() {
		color.NoColor = originalNoColor
	})
}

// SetupTest creates a fresh temporary directory for each test.
func (s *RunnerTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
}

// writeInputs creates the named files under a fresh media directory and
// returns its path.
func (s *RunnerTestSuite) writeInputs(names ...string) string {
	mediaDir := filepath.Join(s.tempDir, "media")
	require.NoError(s.T(), os.MkdirAll(mediaDir, 0o755))
	for _, name := range names {
		writeFileOfSize(s.T(), filepath.Join(mediaDir, name), 100)
	}
	return mediaDir
}

// TestConcurrentBatch tests a five input, two slot run: everything
// converts and every output lands next to its input.
func (s *RunnerTestSuite) TestConcurrentBatch() {
	mediaDir := s.writeInputs("a.mp4", "b.mkv", "c.webm", "d.flv", "e.mp4")
	tool := writeFakeFFmpeg(s.T(), s.tempDir, 10, 0)

	stats, err := Run(&Config{Roots: []string{mediaDir}, Jobs: 2, FFmpegPath: tool})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 5, stats.Total)
	assert.Equal(s.T(), 5, stats.Converted)
	assert.Empty(s.T(), stats.Failed)
	for _, name := range []string{"a.mp4", "b.mkv", "c.webm", "d.flv", "e.mp4"} {
		assert.FileExists(s.T(), filepath.Join(mediaDir, name+".mka"))
	}
}

// TestDryRun tests that a dry run converts nothing on disk yet reports
// every job as done, without needing any FFmpeg installation.
func (s *RunnerTestSuite) TestDryRun() {
	mediaDir := s.writeInputs("a.mp4", "b.mkv")

	stats, err := Run(&Config{Roots: []string{mediaDir}, Jobs: 4, DryRun: true})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 2, stats.Converted)
	assert.NoFileExists(s.T(), filepath.Join(mediaDir, "a.mp4.mka"))
	assert.NoFileExists(s.T(), filepath.Join(mediaDir, "b.mkv.mka"))
}

// TestDuplicateRootsCounted tests that a path supplied twice produces
// exactly one job and one duplicate count.
func (s *RunnerTestSuite) TestDuplicateRootsCounted() {
	mediaDir := s.writeInputs("a.mp4")
	inputPath := filepath.Join(mediaDir, "a.mp4")
	tool := writeFakeFFmpeg(s.T(), s.tempDir, 10, 0)

	stats, err := Run(&Config{Roots: []string{inputPath, inputPath}, Jobs: 1, FFmpegPath: tool})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 2, stats.Total)
	assert.Equal(s.T(), 1, stats.Duplicates)
	assert.Equal(s.T(), 1, stats.Converted)
}

// TestFailuresRecordedAndBatchContinues tests that failed jobs do not
// abort the remaining batch and are enumerated in the stats.
func (s *RunnerTestSuite) TestFailuresRecordedAndBatchContinues() {
	mediaDir := s.writeInputs("a.mp4", "b.mp4", "c.mp4")
	tool := writeFakeFFmpeg(s.T(), s.tempDir, 10, 1)

	stats, err := Run(&Config{Roots: []string{mediaDir}, Jobs: 1, FFmpegPath: tool})
	require.NoError(s.T(), err)

	assert.Zero(s.T(), stats.Converted)
	require.Len(s.T(), stats.Failed, 3)
	for _, job := range stats.Failed {
		assert.Equal(s.T(), FailToolExit, job.Failure())
	}
}

// TestIgnoreUnrecognized tests that tolerated unrecognized files are
// counted and skipped.
func (s *RunnerTestSuite) TestIgnoreUnrecognized() {
	mediaDir := s.writeInputs("a.mp4", "notes.txt", "song.mp3")
	tool := writeFakeFFmpeg(s.T(), s.tempDir, 10, 0)

	stats, err := Run(&Config{
		Roots:              []string{mediaDir},
		Jobs:               1,
		FFmpegPath:         tool,
		IgnoreUnrecognized: true,
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 1, stats.Unrecognized)
	assert.Equal(s.T(), 1, stats.AlreadyAudio)
	assert.Equal(s.T(), 1, stats.Converted)
}

// TestNegativeJobsRejected tests the configuration guard.
func (s *RunnerTestSuite) TestNegativeJobsRejected() {
	_, err := Run(&Config{Roots: []string{s.tempDir}, Jobs: -1})
	assert.Error(s.T(), err)
}

// TestOutputDirectoryMode tests that multiple inputs with an explicit
// output land as renamed basenames inside a created directory.
func (s *RunnerTestSuite) TestOutputDirectoryMode() {
	mediaDir := s.writeInputs("a.mp4", "b.mkv")
	outDir := filepath.Join(s.tempDir, "out")
	tool := writeFakeFFmpeg(s.T(), s.tempDir, 10, 0)

	stats, err := Run(&Config{
		Roots:      []string{mediaDir},
		Jobs:       1,
		FFmpegPath: tool,
		Output:     outDir,
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 2, stats.Converted)
	assert.FileExists(s.T(), filepath.Join(outDir, "a.mp4.mka"))
	assert.FileExists(s.T(), filepath.Join(outDir, "b.mkv.mka"))
}

// TestSingleFileExplicitOutput tests that a single input with an explicit
// output writes exactly that path.
func (s *RunnerTestSuite) TestSingleFileExplicitOutput() {
	mediaDir := s.writeInputs("a.mp4")
	outputPath := filepath.Join(s.tempDir, "soundtrack.mka")
	tool := writeFakeFFmpeg(s.T(), s.tempDir, 10, 0)

	stats, err := Run(&Config{
		Roots:      []string{filepath.Join(mediaDir, "a.mp4")},
		Jobs:       1,
		FFmpegPath: tool,
		Output:     outputPath,
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 1, stats.Converted)
	assert.FileExists(s.T(), outputPath)
}

// TestUnrecognizedAbortsBeforeAnyJob tests that unrecognized files are
// fatal before the first job starts.
func (s *RunnerTestSuite) TestUnrecognizedAbortsBeforeAnyJob() {
	mediaDir := s.writeInputs("a.mp4", "notes.txt")
	tool := writeFakeFFmpeg(s.T(), s.tempDir, 10, 0)

	_, err := Run(&Config{Roots: []string{mediaDir}, Jobs: 1, FFmpegPath: tool})
	require.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "unrecognized file extension")
	assert.NoFileExists(s.T(), filepath.Join(mediaDir, "a.mp4.mka"))
}

// TestRunnerSuite runs the runner test suite.
func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerTestSuite))
}

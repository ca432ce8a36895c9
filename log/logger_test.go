package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/coinbasev1/common/convert"
)

func TestSplitLevel(t *testing.T) {
	t.Parallel()
	l := splitLevel("INFO|warn|ERROR")
	assert.True(t, l.Info)
	assert.True(t, l.Warn)
	assert.True(t, l.Error)
	assert.False(t, l.Debug)
	assert.Equal(t, Levels{}, splitLevel(""))
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()
	a, b := &bytes.Buffer{}, &bytes.Buffer{}
	mw, err := MultiWriter(a, b)
	require.NoError(t, err)
	assert.ErrorIs(t, mw.Add(a), errWriterAlreadyLoaded)

	n, err := mw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())

	require.NoError(t, mw.Remove(b))
	assert.ErrorIs(t, mw.Remove(b), errWriterNotFound)
	_, err = mw.Write([]byte("!"))
	require.NoError(t, err)
	assert.Equal(t, "hello!", a.String())
	assert.Equal(t, "hello", b.String())

	_, err = MultiWriter(a, a)
	assert.ErrorIs(t, err, errWriterAlreadyLoaded)
}

func TestGetWriters(t *testing.T) {
	t.Parallel()
	_, err := getWriters(nil)
	assert.ErrorIs(t, err, errSubloggerConfigIsNil)

	_, err = getWriters(&SubLoggerConfig{Output: "console|stderr"})
	assert.NoError(t, err)

	_, err = getWriters(&SubLoggerConfig{Output: "printer"})
	assert.ErrorIs(t, err, errUnhandledOutputWriter)
}

func TestNewSubLogger(t *testing.T) {
	t.Parallel()
	_, err := NewSubLogger("")
	assert.ErrorIs(t, err, errEmptyLoggerName)

	sl, err := NewSubLogger("sublogger_test")
	require.NoError(t, err)
	assert.Equal(t, "SUBLOGGER_TEST", sl.name)

	_, err = NewSubLogger("SUBLOGGER_TEST")
	assert.ErrorIs(t, err, errSubLoggerRegistered)
}

func TestSubLoggerLevels(t *testing.T) {
	t.Parallel()
	sl, err := NewSubLogger("levels_test")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	sl.SetOutput(buf)
	sl.SetLevels(Levels{Info: true, Error: true})

	Infof(sl, "balance %d", 42)
	Debugf(sl, "hidden %d", 1)
	Warn(sl, "hidden")
	Errorln(sl, "failure", 7)

	out := buf.String()
	assert.Contains(t, out, "balance 42")
	assert.Contains(t, out, "failure7")
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Equal(t, Levels{Info: true, Error: true}, sl.GetLevels())
}

func TestNilSubLogger(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		Infof(nil, "nothing")
		Errorln(nil, "nothing")
	})
}

func TestConfigureSubLogger(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, configureSubLogger("NOPE", "INFO", os.Stdout), errSubLoggerNotFound)
}

func TestRotateWrite(t *testing.T) {
	dir := t.TempDir()
	SetLogPath(dir)
	t.Cleanup(func() { SetLogPath("") })
	assert.Equal(t, dir, GetLogPath())

	r := &Rotate{FileName: "rotate.txt", Rotate: convert.BoolPtr(true), MaxSize: 1}
	n, err := r.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	require.NoError(t, r.Close())

	contents, err := os.ReadFile(filepath.Join(dir, "rotate.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(contents))

	_, err = r.Write(make([]byte, megabyte+1))
	assert.ErrorIs(t, err, errExceedsMaxFileSize)

	// A second write appends to the existing file
	_, err = r.Write([]byte("!"))
	require.NoError(t, err)
	require.NoError(t, r.Close())
	contents, err = os.ReadFile(filepath.Join(dir, "rotate.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello world!", string(contents))
}

func TestSetupGlobalLogger(t *testing.T) {
	assert.ErrorIs(t, SetGlobalLogConfig(nil), errConfigNil)

	c := GenDefaultSettings()
	c.Level = "ERROR"
	require.NoError(t, SetGlobalLogConfig(&c))
	require.NoError(t, SetupGlobalLogger())
	assert.Equal(t, Levels{Error: true}, ClientSys.GetLevels())

	require.NoError(t, SetupSubLoggers([]SubLoggerConfig{{Name: "coinbase", Level: "DEBUG|INFO", Output: "stdout"}}))
	assert.Equal(t, Levels{Debug: true, Info: true}, ClientSys.GetLevels())

	assert.ErrorIs(t, SetupSubLoggers([]SubLoggerConfig{{Name: "missing", Output: "stdout"}}), errSubLoggerNotFound)
	require.NoError(t, CloseLogger())
}

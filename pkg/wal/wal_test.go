package wal

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Seq  int    `json:"seq"`
	Note string `json:"note"`
}

func readEntries(t *testing.T, w *WAL) []entry {
	t.Helper()
	var out []entry
	err := w.ReadAll(func(jsonRaw []byte) error {
		var e entry
		if err := json.Unmarshal(jsonRaw, &e); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestWriteThenReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wal.log")
	w, err := NewWAL(path)
	require.NoError(t, err)

	require.NoError(t, w.Write(entry{Seq: 1, Note: "a"}))
	require.NoError(t, w.Write(entry{Seq: 2, Note: "b"}))
	assert.Equal(t, []entry{{1, "a"}, {2, "b"}}, readEntries(t, w))

	// 讀取後仍然寫在檔案尾端
	require.NoError(t, w.Write(entry{Seq: 3, Note: "c"}))
	require.NoError(t, w.Close())

	reopened, err := NewWAL(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Len(t, readEntries(t, reopened), 3)
}

func TestReadAllTruncatesTornTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wal.log")
	require.NoError(t, os.WriteFile(path, []byte("{\"seq\":1,\"note\":\"a\"}\n{\"seq\":2,\"no"), FileModePrivate))

	w, err := NewWAL(path)
	require.NoError(t, err)
	assert.Equal(t, []entry{{1, "a"}}, readEntries(t, w))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"seq\":1,\"note\":\"a\"}\n", string(data))

	// 截掉之後的寫入接在最後一筆完整紀錄後面
	require.NoError(t, w.Write(entry{Seq: 2, Note: "b"}))
	require.NoError(t, w.Close())

	reopened, err := NewWAL(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, []entry{{1, "a"}, {2, "b"}}, readEntries(t, reopened))
}

func TestWriteFailureLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wal.log")
	w, err := NewWAL(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Write(entry{Seq: 1, Note: "a"}))
	assert.Error(t, w.Write(map[string]any{"bad": make(chan int)}))
	require.NoError(t, w.Write(entry{Seq: 2, Note: "b"}))

	assert.Equal(t, []entry{{1, "a"}, {2, "b"}}, readEntries(t, w))
}

func TestRollbackTruncatesPartialRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wal.log")
	w, err := NewWAL(path)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Write(entry{Seq: 1, Note: "a"}))

	// 模擬寫到一半就失敗
	_, err = w.file.Write([]byte("{\"seq\":2"))
	require.NoError(t, err)
	cause := errors.New("disk full")
	assert.ErrorIs(t, w.rollback(cause), cause)

	require.NoError(t, w.Write(entry{Seq: 3, Note: "c"}))
	assert.Equal(t, []entry{{1, "a"}, {3, "c"}}, readEntries(t, w))
}

func TestReadAllRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wal.log")
	require.NoError(t, os.WriteFile(path, []byte("not json\n"), FileModePrivate))

	w, err := NewWAL(path)
	require.NoError(t, err)
	defer w.Close()
	assert.Error(t, w.ReadAll(func([]byte) error { return nil }))
}

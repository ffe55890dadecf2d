package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zotero-notion-sync/internal/model"
	"zotero-notion-sync/internal/paper"
	"zotero-notion-sync/internal/paper/usecase"
)

// mock dependencies

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockBoard struct {
	rows    []model.Paper
	nextID  int
	creates int
	updates int

	listErr   error
	createErr error
}

func (m *mockBoard) ListPapers(ctx context.Context) ([]model.Paper, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]model.Paper(nil), m.rows...), nil
}

func (m *mockBoard) CreatePaper(ctx context.Context, p model.Paper) (model.Paper, error) {
	m.creates++
	if m.createErr != nil {
		return model.Paper{}, m.createErr
	}
	m.nextID++
	p = p.WithBoardID(fmt.Sprintf("row%04d", m.nextID))
	m.rows = append(m.rows, p)
	return p, nil
}

func (m *mockBoard) UpdatePaper(ctx context.Context, p model.Paper) (model.Paper, error) {
	m.updates++
	for i := range m.rows {
		if m.rows[i].BoardID == p.BoardID {
			m.rows[i] = p
			return p, nil
		}
	}
	return model.Paper{}, errors.New("row not found")
}

type mockLibrary struct {
	papers []model.Paper
	links  int

	listErr error
}

func (m *mockLibrary) ListPapers(ctx context.Context) ([]model.Paper, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]model.Paper(nil), m.papers...), nil
}

func (m *mockLibrary) WriteBackLink(ctx context.Context, p model.Paper) error {
	m.links++
	for i := range m.papers {
		if m.papers[i].ExternalID == p.ExternalID {
			m.papers[i].BoardID = p.BoardID
			return nil
		}
	}
	return errors.New("parent not found")
}

func (m *mockBoard) writes() int   { return m.creates + m.updates }
func (m *mockLibrary) writes() int { return m.links }

func libraryPaper(key string) model.Paper {
	return model.Paper{
		Title:       "Paper " + key,
		Authors:     "Ada Lovelace",
		Link:        "https://doi.org/10.1000/" + key,
		PublishedAt: "2021-03-05",
		ExternalURL: "https://open-zotero.xyz/select/groups/42/items/" + key,
		ExternalID:  key,
	}
}

func TestSynchronize(t *testing.T) {
	ctx := context.Background()

	t.Run("Create path", func(t *testing.T) {
		board := &mockBoard{}
		library := &mockLibrary{papers: []model.Paper{libraryPaper("AAAA1111")}}
		uc := usecase.New(&mockLogger{}, board, library)

		out, err := uc.Synchronize(ctx, paper.SyncInput{})
		require.NoError(t, err)

		assert.Equal(t, 1, board.creates)
		assert.Equal(t, 0, board.updates)
		assert.Equal(t, 1, library.links)
		require.Len(t, board.rows, 1)
		assert.True(t, board.rows[0].ContentEqual(libraryPaper("AAAA1111")))
		assert.Equal(t, board.rows[0].BoardID, library.papers[0].BoardID)
		assert.Equal(t, paper.SyncOutput{LibraryCount: 1, BoardCount: 0, Created: 1, Linked: 1}, out)
	})

	t.Run("Idempotence", func(t *testing.T) {
		board := &mockBoard{}
		library := &mockLibrary{papers: []model.Paper{
			libraryPaper("AAAA1111"),
			libraryPaper("BBBB2222"),
			libraryPaper("CCCC3333"),
		}}
		uc := usecase.New(&mockLogger{}, board, library)

		first, err := uc.Synchronize(ctx, paper.SyncInput{})
		require.NoError(t, err)
		assert.Equal(t, 6, first.Writes())

		before := board.writes() + library.writes()
		second, err := uc.Synchronize(ctx, paper.SyncInput{})
		require.NoError(t, err)
		assert.Equal(t, before, board.writes()+library.writes(), "second pass must not write")
		assert.Equal(t, 0, second.Writes())
		assert.Equal(t, 3, second.Unchanged)
	})

	t.Run("Content-only update", func(t *testing.T) {
		stale := libraryPaper("AAAA1111").WithBoardID("row0001")
		stale.Title = "Old title"
		board := &mockBoard{rows: []model.Paper{stale}}
		library := &mockLibrary{papers: []model.Paper{libraryPaper("AAAA1111").WithBoardID("row0001")}}
		uc := usecase.New(&mockLogger{}, board, library)

		out, err := uc.Synchronize(ctx, paper.SyncInput{})
		require.NoError(t, err)

		assert.Equal(t, 0, board.creates)
		assert.Equal(t, 1, board.updates)
		assert.Equal(t, 0, library.links)
		assert.Equal(t, "Paper AAAA1111", board.rows[0].Title)
		assert.Equal(t, "row0001", board.rows[0].BoardID)
		assert.Equal(t, 1, out.Updated)
	})

	t.Run("Link-only repair", func(t *testing.T) {
		// a previous pass created the row but never wrote the note
		board := &mockBoard{rows: []model.Paper{libraryPaper("AAAA1111").WithBoardID("row0007")}}
		library := &mockLibrary{papers: []model.Paper{libraryPaper("AAAA1111")}}
		uc := usecase.New(&mockLogger{}, board, library)

		out, err := uc.Synchronize(ctx, paper.SyncInput{})
		require.NoError(t, err)

		assert.Equal(t, 0, board.writes())
		assert.Equal(t, 1, library.links)
		assert.Equal(t, "row0007", library.papers[0].BoardID)
		assert.Equal(t, paper.SyncOutput{LibraryCount: 1, BoardCount: 1, Linked: 1}, out)
	})

	t.Run("Content and link drift", func(t *testing.T) {
		stale := libraryPaper("AAAA1111").WithBoardID("row0003")
		stale.Authors = ""
		board := &mockBoard{rows: []model.Paper{stale}}
		library := &mockLibrary{papers: []model.Paper{libraryPaper("AAAA1111").WithBoardID("row9999")}}
		uc := usecase.New(&mockLogger{}, board, library)

		_, err := uc.Synchronize(ctx, paper.SyncInput{})
		require.NoError(t, err)

		assert.Equal(t, 1, board.updates)
		assert.Equal(t, 1, library.links)
		assert.Equal(t, "row0003", library.papers[0].BoardID, "the board row id wins")
	})

	t.Run("Board-only rows are left alone", func(t *testing.T) {
		orphan := libraryPaper("ZZZZ9999").WithBoardID("row0042")
		board := &mockBoard{rows: []model.Paper{orphan}}
		library := &mockLibrary{}
		uc := usecase.New(&mockLogger{}, board, library)

		out, err := uc.Synchronize(ctx, paper.SyncInput{})
		require.NoError(t, err)

		assert.Equal(t, 0, board.writes())
		assert.Equal(t, 0, library.writes())
		assert.Equal(t, []model.Paper{orphan}, board.rows)
		assert.Equal(t, 1, out.BoardCount)
	})

	t.Run("Dry run", func(t *testing.T) {
		stale := libraryPaper("BBBB2222").WithBoardID("row0002")
		stale.Link = ""
		board := &mockBoard{rows: []model.Paper{stale, libraryPaper("CCCC3333").WithBoardID("row0003")}}
		library := &mockLibrary{papers: []model.Paper{
			libraryPaper("AAAA1111"),
			libraryPaper("BBBB2222").WithBoardID("row0002"),
			libraryPaper("CCCC3333"),
		}}
		uc := usecase.New(&mockLogger{}, board, library)

		out, err := uc.Synchronize(ctx, paper.SyncInput{DryRun: true})
		require.NoError(t, err)

		assert.Equal(t, 0, board.writes())
		assert.Equal(t, 0, library.writes())
		assert.Equal(t, paper.SyncOutput{
			LibraryCount: 3,
			BoardCount:   2,
			Created:      1,
			Updated:      1,
			Linked:       2,
			DryRun:       true,
		}, out)
	})
}

func TestSynchronizeErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("Board listing fails", func(t *testing.T) {
		library := &mockLibrary{papers: []model.Paper{libraryPaper("AAAA1111")}}
		uc := usecase.New(&mockLogger{}, &mockBoard{listErr: boom}, library)

		_, err := uc.Synchronize(ctx, paper.SyncInput{})
		assert.ErrorIs(t, err, paper.ErrListBoard)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, library.writes())
	})

	t.Run("Library listing fails", func(t *testing.T) {
		board := &mockBoard{}
		uc := usecase.New(&mockLogger{}, board, &mockLibrary{listErr: boom})

		_, err := uc.Synchronize(ctx, paper.SyncInput{})
		assert.ErrorIs(t, err, paper.ErrListLibrary)
		assert.Equal(t, 0, board.writes())
	})

	t.Run("Failing write aborts the pass", func(t *testing.T) {
		board := &mockBoard{
			rows:      []model.Paper{libraryPaper("AAAA1111").WithBoardID("row0001")},
			createErr: boom,
		}
		library := &mockLibrary{papers: []model.Paper{
			libraryPaper("AAAA1111").WithBoardID("row0001"),
			libraryPaper("BBBB2222"),
			libraryPaper("CCCC3333"),
		}}
		uc := usecase.New(&mockLogger{}, board, library)

		out, err := uc.Synchronize(ctx, paper.SyncInput{})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "BBBB2222")
		assert.Equal(t, 1, board.creates, "CCCC3333 is never attempted")
		assert.Equal(t, 1, out.Unchanged)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		board := &mockBoard{}
		uc := usecase.New(&mockLogger{}, board, &mockLibrary{papers: []model.Paper{libraryPaper("AAAA1111")}})

		_, err := uc.Synchronize(cctx, paper.SyncInput{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, board.writes())
	})
}

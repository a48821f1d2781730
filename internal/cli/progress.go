package cli

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/raphaelgruber/pinroute/internal/models"
)

// inserter stores a batch of localities and reports how many were written.
type inserter interface {
	InsertLocalities(ctx context.Context, records []models.Locality) (int, error)
}

// batchMsg carries the outcome of one inserted batch.
type batchMsg struct {
	n   int
	err error
}

// seedModel is the bubbletea model for seeding progress.
type seedModel struct {
	ctx      context.Context
	store    inserter
	records  []models.Locality
	batch    int
	next     int
	inserted int
	progress progress.Model
	theme    Theme
	done     bool
	quitting bool
	err      error
}

// newSeedModel creates a new seeding model.
func newSeedModel(ctx context.Context, store inserter, records []models.Locality, batch int) seedModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return seedModel{
		ctx:      ctx,
		store:    store,
		records:  records,
		batch:    max(batch, 1),
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init starts the first batch.
func (m seedModel) Init() tea.Cmd {
	return tea.Batch(
		m.insertNext(),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m seedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case batchMsg:
		if msg.err != nil {
			m.err = msg.err
			m.done = true
			return m, tea.Quit
		}
		m.inserted += msg.n
		m.next += m.batch
		if m.next >= len(m.records) {
			m.done = true
			return m, tea.Quit
		}
		return m, m.insertNext()

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m seedModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m seedModel) renderContent() string {
	if m.done || m.quitting {
		return m.finalView()
	}

	var pct float64
	if len(m.records) > 0 {
		pct = float64(m.inserted) / float64(len(m.records))
	}

	status := m.theme.title("[seeding]")
	counts := fmt.Sprintf("%d/%d localities", m.inserted, len(m.records))
	hint := m.theme.hint("Press q to stop after the current batch")
	return fmt.Sprintf("%s %s %s\n%s\n", status, m.progress.ViewAs(pct), counts, hint)
}

func (m seedModel) finalView() string {
	switch {
	case m.quitting:
		return m.theme.hint(fmt.Sprintf("\nStopped after %d of %d localities.\n", m.inserted, len(m.records)))
	case m.err != nil:
		return m.theme.failure(fmt.Sprintf("\n✗ Seeding failed: %s\n", m.err))
	default:
		return m.theme.success("✓ Completed") + fmt.Sprintf("\n\n  Localities inserted: %d\n", m.inserted)
	}
}

// insertNext inserts the batch starting at m.next.
// Runs as a command so Update never blocks on the database.
func (m seedModel) insertNext() tea.Cmd {
	if len(m.records) == 0 {
		return func() tea.Msg { return batchMsg{} }
	}
	end := min(m.next+m.batch, len(m.records))
	batch := m.records[m.next:end]
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		n, err := store.InsertLocalities(ctx, batch)
		return batchMsg{n: n, err: err}
	}
}

// runSeedProgress inserts records with an interactive progress bar.
// Returns the number inserted; stopping early with q is not an error.
func runSeedProgress(ctx context.Context, store inserter, records []models.Locality, batch int) (int, error) {
	p := tea.NewProgram(newSeedModel(ctx, store, records, batch))

	finalModel, err := p.Run()
	if err != nil {
		return 0, fmt.Errorf("progress UI error: %w", err)
	}

	m, ok := finalModel.(seedModel)
	if !ok {
		return 0, nil
	}
	return m.inserted, m.err
}

// seedPlain inserts records batch by batch, printing one line per batch.
func seedPlain(ctx context.Context, store inserter, records []models.Locality, batch int, log func(string)) (int, error) {
	batch = max(batch, 1)
	inserted := 0
	for start := 0; start < len(records); start += batch {
		end := min(start+batch, len(records))
		n, err := store.InsertLocalities(ctx, records[start:end])
		if err != nil {
			return inserted, fmt.Errorf("batch %d-%d: %w", start, end, err)
		}
		inserted += n
		log(fmt.Sprintf("inserted %d/%d localities", inserted, len(records)))
	}
	return inserted, nil
}

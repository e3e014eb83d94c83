package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelgen"
	"github.com/vovakirdan/levelforge/internal/storage"
	"github.com/vovakirdan/levelforge/internal/upload"
)

// Text fields of the builder form.
const (
	fieldName = iota
	fieldAuthor
	fieldSkybox
	fieldSize
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Author", "Skybox", "Size"}

// BuilderOptions wires the builder to its collaborators. Store and Uploader
// may be nil, which disables saving and uploading.
type BuilderOptions struct {
	Settings config.Settings
	Store    *storage.Store
	Uploader *upload.Uploader
	Logger   *log.Logger
	Runtime  core.RuntimeConfig
	Features string // Initial comma separated feature names
	Username string
}

// uploadDoneMsg carries an asynchronous upload result back into the model.
type uploadDoneMsg struct {
	result upload.Result
}

// BuilderModel is the interactive level builder.
type BuilderModel struct {
	opts     BuilderOptions
	keys     BuilderKeyMap
	help     help.Model
	inputs   [fieldCount]textinput.Model
	focus    int
	editing  bool
	features levelgen.FeatureFlags
	rng      *rand.Rand
	seed     int64 // Seed of the current result

	result   *levelgen.Result
	document []byte
	savedID  string
	genErr   error

	uploading bool
	status    string
	statusGen int

	width    int
	height   int
	quitting bool
}

// NewBuilderModel creates a builder with fields prefilled from settings.
func NewBuilderModel(opts BuilderOptions) BuilderModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	rng, _ := core.NewRand(opts.Runtime.Seed)

	h := help.New()
	h.ShowAll = false

	m := BuilderModel{
		opts:     opts,
		keys:     DefaultBuilderKeyMap(),
		help:     h,
		rng:      rng,
		width:    opts.Runtime.ScreenW,
		height:   opts.Runtime.ScreenH,
		features: levelgen.Flags(levelgen.FeatureGoal, levelgen.FeatureSpawn, levelgen.FeaturePath),
	}

	hdr := opts.Settings.Header
	values := [fieldCount]string{
		hdr.LevelName,
		hdr.Author,
		hdr.Skybox,
		strconv.Itoa(opts.Settings.Generation.DefaultSize),
	}
	if opts.Username != "" && values[fieldAuthor] == "" {
		values[fieldAuthor] = opts.Username
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 48
		ti.Width = 24
		ti.SetValue(values[i])
		m.inputs[i] = ti
	}
	m.inputs[fieldSize].CharLimit = 3

	if opts.Features != "" {
		flags, unknown := levelgen.ParseFeaturesLenient(opts.Features)
		m.features = flags
		if len(unknown) > 0 {
			m.status = "ignored unknown features: " + strings.Join(unknown, ", ")
		}
	}

	return m
}

// Init initializes the builder model.
func (m BuilderModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the builder.
func (m BuilderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case uploadDoneMsg:
		return m.handleUploadDone(msg.result)

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes keys outside of the text fields.
func (m BuilderModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if i, ok := featureForKey(msg.String()); ok {
			m.features = m.features.Toggle(levelgen.AllFeatures()[i])
		}
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		return m.generate()

	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.Upload):
		return m.startUpload()

	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.focus = 0
		cmd := m.inputs[m.focus].Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// handleEditKey routes keys to the focused text field.
func (m BuilderModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Done):
		m.inputs[m.focus].Blur()
		m.editing = false
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % fieldCount
		cmd := m.inputs[m.focus].Focus()
		return m, cmd

	case msg.String() == "shift+tab", msg.String() == "up":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		cmd := m.inputs[m.focus].Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// Config assembles the generator configuration from the form. Unreadable
// size text falls back to the minimum size and sizeOK is false.
func (m BuilderModel) Config() (cfg levelgen.LevelConfig, sizeOK bool) {
	params := m.opts.Settings.Generation.Params()
	minSize := params.MinSize
	if minSize <= 0 {
		minSize = levelgen.DefaultParams().MinSize
	}
	size, ok := levelgen.ParseSize(m.inputs[fieldSize].Value(), minSize)
	return levelgen.LevelConfig{
		Size:     size,
		Features: m.features,
		Header: levelgen.Header{
			LevelName: strings.TrimSpace(m.inputs[fieldName].Value()),
			Author:    strings.TrimSpace(m.inputs[fieldAuthor].Value()),
			Skybox:    strings.TrimSpace(m.inputs[fieldSkybox].Value()),
		},
		Params: params,
	}, ok
}

func (m BuilderModel) generate() (tea.Model, tea.Cmd) {
	cfg, sizeOK := m.Config()
	if !sizeOK {
		m.opts.Logger.Warn("unreadable size, using minimum", "text", m.inputs[fieldSize].Value(), "size", cfg.Size)
		m.inputs[fieldSize].SetValue(strconv.Itoa(cfg.Size))
	}

	// Each level draws its own seed; the archive records it.
	seed := m.rng.Int63()
	gen := levelgen.NewGenerator(cfg.Params.MaxAttempts, m.opts.Logger)
	res, err := gen.Generate(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		if errors.Is(err, levelgen.ErrGenerationFailed) {
			m.genErr = err
			m.result = nil
			m.document = nil
			return m, nil
		}
		return m.setStatus(err.Error())
	}

	data, err := level.Encode(res.Document)
	if err != nil {
		return m.setStatus(err.Error())
	}

	m.genErr = nil
	m.seed = seed
	m.result = res
	m.document = data
	m.savedID = ""
	msg := fmt.Sprintf("generated %dx%d in %d attempt(s)", res.Size, res.Size, res.Attempts)
	if !sizeOK {
		msg = fmt.Sprintf("size unreadable, used %d; %s", cfg.Size, msg)
	}
	return m.setStatus(msg)
}

func (m BuilderModel) save() (tea.Model, tea.Cmd) {
	switch {
	case m.document == nil:
		return m.setStatus("nothing to save, press g first")
	case m.opts.Store == nil:
		return m.setStatus("archive unavailable")
	case m.savedID != "":
		return m.setStatus("already saved as " + m.savedID)
	}

	id, err := m.opts.Store.SaveLevel(storage.LevelRecord{
		Seed:     m.seed,
		Size:     m.result.Size,
		Features: m.result.Features.String(),
		Attempts: m.result.Attempts,
		Document: m.document,
	})
	if err != nil {
		return m.setStatus(err.Error())
	}
	m.savedID = id
	return m.setStatus("saved as " + id)
}

func (m BuilderModel) startUpload() (tea.Model, tea.Cmd) {
	switch {
	case m.document == nil:
		return m.setStatus("nothing to upload, press g first")
	case m.opts.Uploader == nil:
		return m.setStatus("uploads are not configured")
	case m.uploading:
		return m, nil
	}

	m.uploading = true
	m.status = "uploading..."
	uploader := m.opts.Uploader
	doc := m.document
	timeout := uploader.Client.Timeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout+time.Second)
		defer cancel()
		return uploadDoneMsg{result: <-uploader.UploadAsync(ctx, doc)}
	}
}

func (m BuilderModel) handleUploadDone(res upload.Result) (tea.Model, tea.Cmd) {
	m.uploading = false
	if m.opts.Store != nil && m.savedID != "" {
		if _, err := m.opts.Store.RecordUpload(storage.UploadRecord{
			LevelID: m.savedID,
			Path:    res.Path,
			OK:      res.OK,
			Message: res.Message,
		}); err != nil {
			m.opts.Logger.Warn("could not record upload", "error", err)
		}
	}
	if res.OK {
		return m.setStatus(res.Message)
	}
	return m.setStatus("upload failed: " + res.Message)
}

func (m BuilderModel) setStatus(s string) (tea.Model, tea.Cmd) {
	m.statusGen++
	m.status = s
	return m, clearStatusCmd(m.statusGen)
}

// Result returns the last generated level, or nil.
func (m BuilderModel) Result() *levelgen.Result {
	return m.result
}

// Document returns the encoded last generated level, or nil.
func (m BuilderModel) Document() []byte {
	return m.document
}

// Features returns the currently selected features.
func (m BuilderModel) Features() levelgen.FeatureFlags {
	return m.features
}

// IsQuitting returns true if the user requested to quit.
func (m BuilderModel) IsQuitting() bool {
	return m.quitting
}

var (
	builderTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
	errorPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the builder.
func (m BuilderModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(builderTitleStyle.Render("LEVELFORGE BUILDER"))
	b.WriteString("\n\n")

	left := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(m.renderFeatures()),
		panelStyle.Render(m.renderFields()),
	)

	var right string
	switch {
	case m.genErr != nil:
		right = errorPanelStyle.Render("Generation failed\n\n" + m.genErr.Error() +
			"\n\nChange the features or size and press g to retry.")
	case m.result != nil:
		right = panelStyle.Render(RenderPreview(m.result.Document) + "\n\n" + m.renderCounts())
	default:
		right = panelStyle.Render(dimStyle.Render("Press g to generate a level."))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m BuilderModel) renderFeatures() string {
	var b strings.Builder
	b.WriteString("Features\n")
	for i, f := range levelgen.AllFeatures() {
		mark := "[ ]"
		style := dimStyle
		if m.features.Has(f) {
			mark = "[x]"
			style = activeStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%d %s %s", i+1, mark, f.Title())))
		if i < int(levelgen.FeatureCount)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m BuilderModel) renderFields() string {
	var b strings.Builder
	for i, in := range m.inputs {
		label := fmt.Sprintf("%-7s", fieldLabels[i])
		if m.editing && i == m.focus {
			label = activeStyle.Render("> " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label + in.View())
		if i < fieldCount-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m BuilderModel) renderCounts() string {
	counts := m.result.Document.Counts()
	parts := make([]string, 0, len(counts))
	for _, k := range level.AllKinds() {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", k, n))
		}
	}
	return strings.Join(parts, "  ")
}

// RunBuilder runs the builder in the local terminal.
func RunBuilder(opts BuilderOptions) error {
	p := tea.NewProgram(NewBuilderModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package cmd

import (
	"context"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/glimt/glimt/internal/generate"
	"github.com/glimt/glimt/internal/history"
	"github.com/glimt/glimt/internal/imaging"
)

// imageGenerator is the single network dependency of the shell.
type imageGenerator interface {
	Generate(ctx context.Context, prompt, aspectRatio string) (*generate.Image, error)
}

// aspectOption is one of the three fixed aspect-ratio choices.
type aspectOption struct {
	label string
	ratio string
}

var aspectOptions = []aspectOption{
	{"Square", generate.AspectSquare},
	{"Landscape", generate.AspectLandscape},
	{"Portrait", generate.AspectPortrait},
}

func aspectIndex(ratio string) int {
	for i, opt := range aspectOptions {
		if opt.ratio == ratio {
			return i
		}
	}
	return 0
}

// displayMode is the derived top-level view state. Exactly one mode is
// active at a time; loading takes priority over a stale error.
type displayMode int

const (
	modeEmpty displayMode = iota
	modeLoading
	modeError
	modeImage
)

// overlayMode tracks which modal, if any, sits above the main view.
type overlayMode int

const (
	overlayNone overlayMode = iota
	overlayLightbox
	overlayEdit
)

// currentImage is the image shown in the result panel.
type currentImage struct {
	prompt string
	data   []byte
	mime   string
	img    image.Image
	// recID is the ID of the backing history record, or "" when the record
	// is gone (history cleared since this image was produced).
	recID string
}

// generateResultMsg carries the outcome of one generation request. seq ties
// it to the request that issued it so stale responses are discarded.
type generateResultMsg struct {
	seq    int
	prompt string
	ratio  string
	img    *generate.Image
	err    error
}

type model struct {
	gen    imageGenerator
	store  *history.Store
	apiKey string

	textInput textinput.Model
	spinner   spinner.Model
	keys      keyMap
	help      help.Model

	aspectIdx  int
	current    *currentImage
	generating bool
	errMsg     string
	status     string
	genSeq     int
	histCursor int

	overlay  overlayMode
	lightbox *lightboxModel
	editor   *editModel
	// editing is the image the open editor was started on. A generation
	// result may replace current while the editor is up; the crop must
	// still land on the image (and record) it was opened for.
	editing *currentImage

	outputDir string
	protocol  displayProtocol

	width  int
	height int
}

// modelOptions wires the shell to its collaborators.
type modelOptions struct {
	gen       imageGenerator
	store     *history.Store
	apiKey    string
	prompt    string
	aspect    string
	outputDir string
	protocol  displayProtocol
}

func newShellModel(opts modelOptions) model {
	ti := textinput.New()
	ti.Placeholder = "Describe the image you want"
	ti.Focus()
	if opts.prompt != "" {
		ti.SetValue(opts.prompt)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		gen:       opts.gen,
		store:     opts.store,
		apiKey:    opts.apiKey,
		textInput: ti,
		spinner:   s,
		keys:      defaultKeyMap(),
		help:      help.New(),
		aspectIdx: aspectIndex(opts.aspect),
		outputDir: opts.outputDir,
		protocol:  opts.protocol,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m model) aspect() aspectOption {
	return aspectOptions[m.aspectIdx]
}

// displayMode derives the active mode for the result panel.
func (m model) displayMode() displayMode {
	switch {
	case m.generating:
		return modeLoading
	case m.errMsg != "":
		return modeError
	case m.current != nil:
		return modeImage
	default:
		return modeEmpty
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.textInput.Width = leftWidth(msg.Width) - 6
		if m.lightbox != nil {
			m.lightbox.resize(msg.Width, msg.Height)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case generateResultMsg:
		return m.applyGenerateResult(msg)

	case tea.KeyMsg:
		switch m.overlay {
		case overlayLightbox:
			return m.updateLightbox(msg)
		case overlayEdit:
			return m.updateEditor(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.overlay == overlayLightbox {
			return m.updateLightbox(msg)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		return m.startGeneration()

	case key.Matches(msg, m.keys.CycleAspect):
		m.aspectIdx = (m.aspectIdx + 1) % len(aspectOptions)
		return m, nil

	case key.Matches(msg, m.keys.ClearForm):
		m.textInput.SetValue("")
		m.errMsg = ""
		m.current = nil
		return m, nil

	case key.Matches(msg, m.keys.HistoryUp):
		if m.histCursor > 0 {
			m.histCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryDown):
		if m.histCursor < m.store.Len()-1 {
			m.histCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.ReuseItem):
		return m.reuseHistoryItem()

	case key.Matches(msg, m.keys.ClearHistory):
		m.store.Clear()
		m.histCursor = 0
		if m.current != nil {
			m.current.recID = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Download):
		if m.current == nil {
			return m, nil
		}
		path, err := saveDownload(m.outputDir, m.current.prompt, m.current.mime, m.current.data)
		if err != nil {
			log.Warn("Download failed", "err", err)
			m.errMsg = "Could not save image: " + err.Error()
			return m, nil
		}
		m.status = "Saved " + path
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.current == nil {
			return m, nil
		}
		cols, rows := editorArea(m.width, m.height)
		m.editor = newEditModel(m.current.img, cols, rows)
		m.editing = m.current
		m.overlay = overlayEdit
		return m, nil

	case key.Matches(msg, m.keys.Lightbox):
		if m.current == nil {
			return m, nil
		}
		m.lightbox = newLightboxModel(m.current.img, m.current.data, m.protocol, m.width, m.height)
		m.overlay = overlayLightbox
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// startGeneration validates preconditions and issues exactly one request.
func (m model) startGeneration() (tea.Model, tea.Cmd) {
	prompt := strings.TrimSpace(m.textInput.Value())
	if prompt == "" {
		m.errMsg = generate.MsgEmptyPrompt
		return m, nil
	}
	if m.apiKey == "" {
		m.errMsg = generate.MsgNoAPIKey
		return m, nil
	}
	if m.gen == nil {
		// A key was configured but client construction failed at startup.
		m.errMsg = generate.MsgNoClient
		return m, nil
	}
	if m.generating {
		// Trigger is disabled while a request is in flight.
		return m, nil
	}

	m.genSeq++
	m.generating = true
	m.errMsg = ""
	ratio := m.aspect().ratio
	return m, tea.Batch(generateCmd(m.gen, m.genSeq, prompt, ratio), m.spinner.Tick)
}

func generateCmd(gen imageGenerator, seq int, prompt, ratio string) tea.Cmd {
	return func() tea.Msg {
		img, err := gen.Generate(context.Background(), prompt, ratio)
		return generateResultMsg{seq: seq, prompt: prompt, ratio: ratio, img: img, err: err}
	}
}

func (m model) applyGenerateResult(msg generateResultMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.genSeq {
		// Only the most recent request may affect state.
		log.Debug("Discarding stale generation result", "seq", msg.seq, "latest", m.genSeq)
		return m, nil
	}

	m.generating = false

	if msg.err != nil {
		m.errMsg = generate.Classify(msg.err)
		return m, nil
	}

	img, _, err := imaging.Decode(msg.img.Data)
	if err != nil {
		m.errMsg = generate.Classify(err)
		return m, nil
	}

	rec := m.store.Append(msg.prompt, imaging.EncodeDataURL(msg.img.MIME, msg.img.Data), msg.ratio)
	m.current = &currentImage{
		prompt: msg.prompt,
		data:   msg.img.Data,
		mime:   msg.img.MIME,
		img:    img,
		recID:  rec.ID,
	}
	m.histCursor = 0
	m.errMsg = ""
	return m, nil
}

func (m model) reuseHistoryItem() (tea.Model, tea.Cmd) {
	rec, ok := m.store.Get(m.histCursor)
	if !ok {
		return m, nil
	}

	m.textInput.SetValue(rec.Prompt)
	m.aspectIdx = aspectIndex(rec.AspectRatio)
	m.errMsg = ""

	mime, data, err := imaging.DecodeDataURL(rec.ImageData)
	if err != nil {
		log.Warn("Unreadable history image", "id", rec.ID, "err", err)
		return m, nil
	}
	img, _, err := imaging.Decode(data)
	if err != nil {
		log.Warn("Undecodable history image", "id", rec.ID, "err", err)
		return m, nil
	}
	m.current = &currentImage{
		prompt: rec.Prompt,
		data:   data,
		mime:   mime,
		img:    img,
		recID:  rec.ID,
	}
	return m, nil
}

func (m model) updateLightbox(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.lightbox == nil {
		m.overlay = overlayNone
		return m, nil
	}
	if m.lightbox.update(msg) {
		m.lightbox = nil
		m.overlay = overlayNone
	}
	return m, nil
}

func (m model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editor == nil {
		m.overlay = overlayNone
		return m, nil
	}
	m.editor.update(msg)

	switch m.editor.state {
	case editSaved:
		cropped := m.editor.result
		if img, _, err := imaging.Decode(cropped); err == nil {
			src := m.editing
			if src != nil && src.recID != "" {
				m.store.UpdateImageByID(src.recID, imaging.EncodeDataURL("image/jpeg", cropped))
			}
			// Only swap the displayed image if it is still the one the
			// editor was opened on; a newer generation result stays put.
			if src != nil && m.current == src {
				m.current = &currentImage{
					prompt: src.prompt,
					data:   cropped,
					mime:   "image/jpeg",
					img:    img,
					recID:  src.recID,
				}
			}
		} else {
			log.Warn("Could not decode cropped image", "err", err)
		}
		m.editor = nil
		m.editing = nil
		m.overlay = overlayNone

	case editCancelled:
		m.editor = nil
		m.editing = nil
		m.overlay = overlayNone
	}
	return m, nil
}

// editorArea is the cell box available to the crop editor overlay.
func editorArea(width, height int) (cols, rows int) {
	cols = width - 10
	rows = height - 8
	if cols < 10 {
		cols = 10
	}
	if rows < 5 {
		rows = 5
	}
	return cols, rows
}

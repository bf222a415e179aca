package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storydesk/internal/tui/styles"
	"storydesk/internal/unsplash"
)

// ImagePicker is a modal for finding a replacement cover image. The user
// types a query, results list below, enter on a result picks it.
type ImagePicker struct {
	visible bool
	input   textinput.Model
	photos  []unsplash.Photo
	cursor  int
	loading bool
	errMsg  string
	// true once a search has run, distinguishes "no results" from "not yet searched"
	searched bool
}

func NewImagePicker() ImagePicker {
	ti := textinput.New()
	ti.Placeholder = "search cover images..."
	ti.Prompt = "? "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.Width = 40
	return ImagePicker{input: ti}
}

func (p *ImagePicker) Show() {
	p.visible = true
	p.photos = nil
	p.cursor = 0
	p.errMsg = ""
	p.searched = false
	p.input.SetValue("")
	p.input.Focus()
}

func (p *ImagePicker) Hide() {
	p.visible = false
	p.input.Blur()
}

func (p ImagePicker) IsVisible() bool { return p.visible }

// SetResults installs search results and moves focus to the list.
func (p *ImagePicker) SetResults(photos []unsplash.Photo) {
	p.photos = photos
	p.cursor = 0
	p.loading = false
	p.searched = true
	p.errMsg = ""
	p.input.Blur()
}

func (p *ImagePicker) SetLoading(v bool) { p.loading = v }

func (p *ImagePicker) SetError(msg string) {
	p.loading = false
	p.searched = true
	p.photos = nil
	p.errMsg = msg
}

// Update handles key events. Returns (picker, cmd, query, picked):
// query is non-empty when the user submitted a search; picked is the chosen
// photo, nil otherwise.
func (p ImagePicker) Update(msg tea.Msg) (ImagePicker, tea.Cmd, string, *unsplash.Photo) {
	if !p.visible {
		return p, nil, "", nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd, "", nil
	}

	if p.input.Focused() {
		switch keyMsg.String() {
		case "esc":
			p.Hide()
			return p, nil, "", nil
		case "enter":
			return p, nil, strings.TrimSpace(p.input.Value()), nil
		case "down":
			if len(p.photos) > 0 {
				p.input.Blur()
			}
			return p, nil, "", nil
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd, "", nil
	}

	switch keyMsg.String() {
	case "esc":
		p.Hide()
	case "/":
		p.input.Focus()
	case "j", "down":
		if p.cursor < len(p.photos)-1 {
			p.cursor++
		}
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		} else {
			p.input.Focus()
		}
	case "enter":
		if p.cursor < len(p.photos) {
			chosen := p.photos[p.cursor]
			p.Hide()
			return p, nil, "", &chosen
		}
	}
	return p, nil, "", nil
}

func (p ImagePicker) View() string {
	if !p.visible {
		return ""
	}

	var parts []string
	parts = append(parts, styles.ModalTitleStyle.Render("Change cover image"))
	parts = append(parts, p.input.View(), "")

	switch {
	case p.loading:
		parts = append(parts, styles.DimStyle.Render("searching..."))
	case p.errMsg != "":
		parts = append(parts, styles.ErrorStyle.Render(p.errMsg))
	case p.searched && len(p.photos) == 0:
		parts = append(parts, styles.DimStyle.Render("no images found"))
	default:
		for i, photo := range p.photos {
			label := photo.AltDescription
			if label == "" {
				label = photo.ID
			}
			row := fmt.Sprintf("%s  %s", styles.Truncate(label, 34), styles.DimStyle.Render("by "+photo.User.Name))
			if i == p.cursor && !p.input.Focused() {
				row = styles.SelectedItemStyle.Render(row)
			} else {
				row = styles.NormalItemStyle.Render(row)
			}
			parts = append(parts, row)
		}
	}

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

package models

import "time"

type Note struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Content   string     `gorm:"type:text" json:"content"`
	X         int        `json:"x"`
	Y         int        `json:"y"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Color     *string    `json:"color"`
	ZIndex    int        `gorm:"column:z_index" json:"zIndex"`
	Tags      Tags       `gorm:"type:text" json:"tags"`
	LastSaved *time.Time `json:"lastSaved"`
	BoardID   uint       `gorm:"not null;index" json:"-"`
}

// NoteColumns are the writable columns of a note.
var NoteColumns = []string{"content", "x", "y", "width", "height", "color", "z_index", "tags", "last_saved", "board_id"}

// NotePatch is a sparse update. A nil field leaves the stored value alone.
type NotePatch struct {
	Content   *string    `json:"content"`
	X         *int       `json:"x"`
	Y         *int       `json:"y"`
	Width     *int       `json:"width"`
	Height    *int       `json:"height"`
	Color     *string    `json:"color"`
	ZIndex    *int       `json:"zIndex"`
	Tags      *[]string  `json:"tags"`
	LastSaved *time.Time `json:"lastSaved"`
}

// ApplyTo copies the present fields of the patch onto note and returns the
// columns it touched. With zeroAsAbsent set, numeric fields holding 0 count
// as not provided, which is what existing clients rely on.
func (p NotePatch) ApplyTo(note *Note, zeroAsAbsent bool) []string {
	var columns []string
	if p.Content != nil {
		note.Content = *p.Content
		columns = append(columns, "content")
	}
	columns = applyInt(columns, "x", &note.X, p.X, zeroAsAbsent)
	columns = applyInt(columns, "y", &note.Y, p.Y, zeroAsAbsent)
	columns = applyInt(columns, "width", &note.Width, p.Width, zeroAsAbsent)
	columns = applyInt(columns, "height", &note.Height, p.Height, zeroAsAbsent)
	if p.Color != nil {
		color := *p.Color
		note.Color = &color
		columns = append(columns, "color")
	}
	columns = applyInt(columns, "z_index", &note.ZIndex, p.ZIndex, zeroAsAbsent)
	if p.Tags != nil {
		note.Tags = append(Tags{}, (*p.Tags)...)
		columns = append(columns, "tags")
	}
	if p.LastSaved != nil {
		lastSaved := *p.LastSaved
		note.LastSaved = &lastSaved
		columns = append(columns, "last_saved")
	}
	return columns
}

func applyInt(columns []string, column string, dst *int, src *int, zeroAsAbsent bool) []string {
	if src == nil {
		return columns
	}
	if zeroAsAbsent && *src == 0 {
		return columns
	}
	*dst = *src
	return append(columns, column)
}

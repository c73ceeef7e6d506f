package lyrics

// SyncTypeUnsynced marks lyrics without time tags.
const SyncTypeUnsynced = "UNSYNCED"

// Line is a single lyric line.
type Line struct {
	// TimeTag is the verbatim time tag, set only for synchronized lyrics.
	TimeTag string
	// Words is the line text.
	Words string
}

// Lyrics holds the lines of a track.
type Lyrics struct {
	// IsSynced reports whether every line carries a time tag.
	IsSynced bool
	// Lines are the lyric lines in order.
	Lines []Line
}

// Result is the outcome of a lyrics lookup: either present lyrics or the reason they are absent.
type Result struct {
	lyrics *Lyrics
	reason error
}

// Present wraps found lyrics.
func Present(lyrics *Lyrics) Result {
	return Result{lyrics: lyrics}
}

// Absent records why no lyrics are available.
func Absent(reason error) Result {
	return Result{reason: reason}
}

// Get returns the lyrics and true when they are present.
func (r Result) Get() (*Lyrics, bool) {
	if r.lyrics == nil {
		return nil, false
	}

	return r.lyrics, true
}

// Reason returns why the lyrics are absent, nil when they are present.
func (r Result) Reason() error {
	if r.lyrics != nil {
		return nil
	}

	if r.reason == nil {
		return ErrLyricsNotFound
	}

	return r.reason
}

// payload is the body of the lyrics service.
type payload struct {
	Error    bool          `json:"error"`
	Message  string        `json:"message"`
	SyncType string        `json:"syncType"`
	Lines    []payloadLine `json:"lines"`
}

type payloadLine struct {
	TimeTag string `json:"timeTag"`
	Words   string `json:"words"`
}

package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/metronome/constant"
)

type decoderFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decoderFunc{
	".wav":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	".mp3":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	".ogg":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
	".oga":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) },
}

// SupportedExtensions lists the clip file extensions Load accepts
func SupportedExtensions() []string {
	return []string{".flac", ".mp3", ".oga", ".ogg", ".wav"}
}

// decodeFile reads a whole clip into memory in the target format
func decodeFile(path string, target beep.Format) (buf *beep.Buffer, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrClipNotFound, path)
		}
		return nil, fmt.Errorf("opening clip: %w", err)
	}
	defer f.Close()

	// Third-party decoders may panic on malformed input
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("%w: %v", ErrDecode, r)
		}
	}()

	streamer, format, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != target.SampleRate {
		src = beep.Resample(constant.AudioResampleQuality, format.SampleRate, target.SampleRate, streamer)
	}

	buf = beep.NewBuffer(target)
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyClip
	}
	return buf, nil
}

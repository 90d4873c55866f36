// Package wav decodes audio files into sample buffers for analysis.
//
// WAV files are read through go-audio's decoder, MP3 files through go-mp3.
// Whatever the source format, the output is the same: mono float64 samples
// in [-1, 1] plus the source sample rate, packaged as an
// analysis.SampleBuffer. Multi-channel audio is downmixed by averaging
// channels.
package wav

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	audiowav "github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"

	"song-analysis/analysis"
)

// DecodeFile decodes a WAV or MP3 file into a mono sample buffer. The
// format is chosen by file extension.
func DecodeFile(path string) (analysis.SampleBuffer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return DecodeWAVFile(path)
	case ".mp3":
		return DecodeMP3File(path)
	default:
		return analysis.SampleBuffer{}, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
}

// DecodeWAVFile reads a WAV file into a mono sample buffer.
func DecodeWAVFile(path string) (analysis.SampleBuffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return analysis.SampleBuffer{}, fmt.Errorf("failed to open wav file: %w", err)
	}
	defer file.Close()

	decoder := audiowav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return analysis.SampleBuffer{}, fmt.Errorf("invalid wav file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return analysis.SampleBuffer{}, fmt.Errorf("failed to read pcm buffer: %w", err)
	}

	return bufferFromPCM(buf)
}

// bufferFromPCM converts a decoded PCM buffer into a mono sample buffer,
// normalizing integer samples by the source bit depth.
func bufferFromPCM(buf *audio.IntBuffer) (analysis.SampleBuffer, error) {
	if buf == nil || buf.Format == nil {
		return analysis.SampleBuffer{}, fmt.Errorf("decoder produced no format information")
	}
	channels := buf.Format.NumChannels
	if channels < 1 {
		return analysis.SampleBuffer{}, fmt.Errorf("invalid channel count: %d", channels)
	}
	sampleRate := buf.Format.SampleRate
	if sampleRate <= 0 {
		return analysis.SampleBuffer{}, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = sum / float64(channels) / scale
	}

	return analysis.SampleBuffer{
		Samples:    samples,
		SampleRate: sampleRate,
		Duration:   float64(frames) / float64(sampleRate),
	}, nil
}

// DecodeMP3File reads an MP3 file into a mono sample buffer. go-mp3 always
// emits 16-bit stereo PCM at the source rate.
func DecodeMP3File(path string) (analysis.SampleBuffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return analysis.SampleBuffer{}, fmt.Errorf("failed to open mp3 file: %w", err)
	}
	defer file.Close()

	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		return analysis.SampleBuffer{}, fmt.Errorf("failed to decode mp3: %w", err)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return analysis.SampleBuffer{}, fmt.Errorf("failed to read mp3 samples: %w", err)
	}

	samples := monoFromStereoLE16(raw)
	sampleRate := decoder.SampleRate()

	return analysis.SampleBuffer{
		Samples:    samples,
		SampleRate: sampleRate,
		Duration:   float64(len(samples)) / float64(sampleRate),
	}, nil
}

// monoFromStereoLE16 converts interleaved little-endian 16-bit stereo PCM
// to mono float64 samples in [-1, 1].
func monoFromStereoLE16(raw []byte) []float64 {
	frames := len(raw) / 4
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left := int16(raw[i*4]) | int16(raw[i*4+1])<<8
		right := int16(raw[i*4+2]) | int16(raw[i*4+3])<<8
		samples[i] = (float64(left) + float64(right)) / 2 / 32768.0
	}
	return samples
}

package escpos

import (
	"bytes"
	"errors"
	"testing"

	"ticketd/internal/model"
)

func testImage(t *testing.T, width, height int) model.RasterImage {
	t.Helper()
	pix := make([]byte, width*height)
	for i := range pix {
		// alternating texture so packed rows are non-trivial
		if (i/3)%2 == 0 {
			pix[i] = 0x00
		} else {
			pix[i] = 0xFF
		}
	}
	return model.RasterImage{Width: width, Height: height, Pix: pix, Mode: model.ColorModeOneBit}
}

// chunk is one parsed GS v 0 command.
type chunk struct {
	rowBytes int
	rows     int
	data     []byte
}

// parseStream walks an encoded job and splits it into init, raster chunks,
// and the trailing control bytes.
func parseStream(t *testing.T, stream []byte) (chunks []chunk, tail []byte) {
	t.Helper()
	if len(stream) < 2 || stream[0] != 0x1B || stream[1] != 0x40 {
		t.Fatalf("stream does not start with ESC @: % x", stream[:2])
	}
	rest := stream[2:]
	for len(rest) >= 4 && rest[0] == 0x1D && rest[1] == 0x76 && rest[2] == 0x30 {
		if len(rest) < 8 {
			t.Fatalf("truncated raster header: % x", rest)
		}
		rowBytes := int(rest[4]) | int(rest[5])<<8
		rows := int(rest[6]) | int(rest[7])<<8
		payload := rowBytes * rows
		if len(rest) < 8+payload {
			t.Fatalf("raster chunk wants %d payload bytes, stream has %d", payload, len(rest)-8)
		}
		chunks = append(chunks, chunk{rowBytes: rowBytes, rows: rows, data: rest[8 : 8+payload]})
		rest = rest[8+payload:]
	}
	return chunks, rest
}

func TestEncodeDeterministic(t *testing.T) {
	img := testImage(t, 576, 300)
	opts := Options{MaxRows: 128, FeedLines: 3, CutFeed: true}

	first, err := Encode(img, opts)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := Encode(img, opts)
	if err != nil {
		t.Fatalf("encode again: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("identical input produced different byte streams")
	}
}

func TestEncodeChunking(t *testing.T) {
	cases := []struct {
		name    string
		height  int
		maxRows int
		want    []int // rows per chunk
	}{
		{"single chunk", 100, 256, []int{100}},
		{"exact multiple", 512, 256, []int{256, 256}},
		{"remainder chunk", 300, 128, []int{128, 128, 44}},
		{"one row over", 257, 256, []int{256, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			img := testImage(t, 576, tc.height)
			stream, err := Encode(img, Options{MaxRows: tc.maxRows, FeedLines: 3})
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			chunks, _ := parseStream(t, stream)
			if len(chunks) != len(tc.want) {
				t.Fatalf("got %d chunks, want %d", len(chunks), len(tc.want))
			}
			total := 0
			for i, c := range chunks {
				if c.rows != tc.want[i] {
					t.Errorf("chunk %d has %d rows, want %d", i, c.rows, tc.want[i])
				}
				if c.rowBytes != 576/8 {
					t.Errorf("chunk %d rowBytes = %d, want %d", i, c.rowBytes, 576/8)
				}
				total += c.rows
			}
			if total != tc.height {
				t.Errorf("chunks cover %d rows, image has %d", total, tc.height)
			}
		})
	}
}

func TestEncodeChunksTileWithoutGaps(t *testing.T) {
	img := testImage(t, 64, 300)

	whole, err := Encode(img, Options{MaxRows: 1000})
	if err != nil {
		t.Fatalf("encode unchunked: %v", err)
	}
	split, err := Encode(img, Options{MaxRows: 7}) // awkward divisor on purpose
	if err != nil {
		t.Fatalf("encode chunked: %v", err)
	}

	wholeChunks, _ := parseStream(t, whole)
	splitChunks, _ := parseStream(t, split)

	var wholeData, splitData []byte
	for _, c := range wholeChunks {
		wholeData = append(wholeData, c.data...)
	}
	for _, c := range splitChunks {
		splitData = append(splitData, c.data...)
	}
	if !bytes.Equal(wholeData, splitData) {
		t.Fatal("chunked raster data differs from unchunked; chunks gap or overlap")
	}
}

func TestEncodeTrailer(t *testing.T) {
	img := testImage(t, 8, 8)

	t.Run("feed and cut", func(t *testing.T) {
		stream, err := Encode(img, Options{FeedLines: 3, CutFeed: true})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		_, tail := parseStream(t, stream)
		want := []byte{0x1B, 0x64, 0x03, 0x1D, 0x56, 0x41, 0x00}
		if !bytes.Equal(tail, want) {
			t.Fatalf("tail = % x, want % x", tail, want)
		}
	})

	t.Run("feed only", func(t *testing.T) {
		stream, err := Encode(img, Options{FeedLines: 3})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		_, tail := parseStream(t, stream)
		want := []byte{0x1B, 0x64, 0x03}
		if !bytes.Equal(tail, want) {
			t.Fatalf("tail = % x, want % x", tail, want)
		}
	})
}

func TestEncodeWidthNotByteAligned(t *testing.T) {
	// 10px wide: rows must pack into 2 bytes with the trailing 6 bits white.
	img := model.RasterImage{Width: 10, Height: 1, Pix: make([]byte, 10), Mode: model.ColorModeOneBit}
	// all black
	stream, err := Encode(img, Options{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	chunks, _ := parseStream(t, stream)
	if len(chunks) != 1 || chunks[0].rowBytes != 2 {
		t.Fatalf("want one chunk of 2 row bytes, got %+v", chunks)
	}
	want := []byte{0xFF, 0xC0}
	if !bytes.Equal(chunks[0].data, want) {
		t.Fatalf("packed row = % x, want % x", chunks[0].data, want)
	}
}

func TestEncodeRejectsMalformedImages(t *testing.T) {
	cases := []struct {
		name string
		img  model.RasterImage
	}{
		{"empty", model.RasterImage{}},
		{"zero height", model.RasterImage{Width: 8, Pix: []byte{}}},
		{"short buffer", model.RasterImage{Width: 8, Height: 2, Pix: make([]byte, 8)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.img, Options{})
			var imgErr *model.ImageError
			if !errors.As(err, &imgErr) {
				t.Fatalf("want *model.ImageError, got %v", err)
			}
		})
	}
}

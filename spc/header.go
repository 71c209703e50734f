package spc

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	offName           = 0
	nameFieldLen      = 120
	nameLen           = 80
	offTime           = 122
	timeLen           = 8
	offDate           = 130
	dateLen           = 9
	offDimension      = 142
	offXLength        = 146
	offYLength        = 150
	offOrigLoadFormat = 154
	offLoadFormat     = 162
	offNonZero        = 164
	offFormatInfo     = 224
	formatInfoLen     = 130
	offTotalCount     = 896
	offBitmask        = 1024

	headerSize        = 1024
	recordSize        = 1024
	channelsPerRecord = recordSize * 8

	// dateLayout is dd-MMM-yy hh:mm:ss with a 12-hour clock.
	dateLayout = "02-Jan-06 03:04:05"

	formatInfoPreamble = "SMAUG BITMASK"
)

// Load format indicators.
const (
	LoadMusort = 0
	LoadByte   = 1
	LoadShort  = 2
	LoadInt    = 4
)

// Header is the decoded fixed-offset block at the start of an SPC file.
type Header struct {
	Name           string
	Time           string
	Date           string
	Created        time.Time
	DateErr        error // set when Date and Time do not parse; Created is zero
	Dimension      int
	XLength        int
	YLength        int
	OrigLoadFormat int
	LoadFormat     int
	NonZero        int
	FormatInfo     string
	TotalCount     int32
}

// Channels is the number of channel positions, XLength*YLength.
func (h *Header) Channels() int {
	return h.XLength * h.YLength
}

// NumBitmaskRecords is the number of 1024-byte bitmap records.
func (h *Header) NumBitmaskRecords() int {
	return bitmaskRecords(h.Channels())
}

// Dense reports whether the payload is stored MUSORT style.
func (h *Header) Dense() bool {
	return h.LoadFormat == LoadMusort
}

func bitmaskRecords(channels int) int {
	return (channels + channelsPerRecord - 1) / channelsPerRecord
}

func parseHeader(b []byte) (*Header, error) {
	if len(b) < headerSize {
		return nil, fmt.Errorf("%w: header is %d bytes", ErrTruncated, len(b))
	}
	h := &Header{
		Name:           text(b[offName : offName+nameLen]),
		Time:           text(b[offTime : offTime+timeLen]),
		Date:           text(b[offDate : offDate+dateLen]),
		Dimension:      getInt16(b[offDimension:]),
		XLength:        getUint16(b[offXLength:]),
		YLength:        getUint16(b[offYLength:]),
		OrigLoadFormat: getInt16(b[offOrigLoadFormat:]),
		LoadFormat:     getInt16(b[offLoadFormat:]),
		NonZero:        getInt32(b[offNonZero:]),
		FormatInfo:     text(b[offFormatInfo : offFormatInfo+formatInfoLen]),
	}
	if h.YLength < 1 {
		h.YLength = 1
	}
	var tc [4]byte
	copy(tc[:], b[offTotalCount:])
	h.TotalCount = DecodeTotalCount(tc)

	created, err := time.ParseInLocation(dateLayout, h.Date+" "+h.Time, time.Local)
	if err != nil {
		h.DateErr = err
		log.WithFields(log.Fields{"date": h.Date, "time": h.Time}).Warn("spc: unparsable creation date")
	} else {
		h.Created = created
	}
	return h, nil
}

// marshal writes h into the first headerSize bytes of b.
func (h *Header) marshal(b []byte) {
	putText(b[offName:offName+nameFieldLen], h.Name)
	putText(b[offTime:offTime+timeLen], h.Time)
	putText(b[offDate:offDate+dateLen], h.Date)
	putInt16(b[offDimension:], h.Dimension)
	putInt16(b[offXLength:], h.XLength)
	putInt16(b[offYLength:], h.YLength)
	putInt16(b[offOrigLoadFormat:], h.OrigLoadFormat)
	putInt16(b[offLoadFormat:], h.LoadFormat)
	putInt32(b[offNonZero:], h.NonZero)
	putText(b[offFormatInfo:offFormatInfo+formatInfoLen], h.FormatInfo)
	tc := EncodeTotalCount(h.TotalCount)
	copy(b[offTotalCount:], tc[:])
}

// stampDate fills Date and Time from t.
func (h *Header) stampDate(t time.Time) {
	s := t.Format(dateLayout)
	h.Date, h.Time = s[:dateLen], s[dateLen+1:]
	h.Created = t
}

// formatInfo describes the record layout: one U1 per bitmap record and a
// trailing H2 for the payload. It is not read back.
func formatInfo(records int) string {
	var sb strings.Builder
	sb.WriteString(formatInfoPreamble)
	sb.WriteString(" (")
	for i := 0; i < records; i++ {
		sb.WriteString("U1,")
	}
	sb.WriteString("H2)")
	s := sb.String()
	if len(s) > formatInfoLen {
		s = s[:formatInfoLen]
	}
	return s
}

func text(b []byte) string {
	return strings.Trim(string(b), " \x00")
}

// putText space-pads s into b, truncating if needed.
func putText(b []byte, s string) {
	n := copy(b, s)
	for i := n; i < len(b); i++ {
		b[i] = ' '
	}
}

package geo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultZoneDir is where the system keeps its tz database.
const DefaultZoneDir = "/usr/share/zoneinfo"

// ZoneTables maps IANA zone names to country names using the tz
// database's own tables.
type ZoneTables struct {
	zoneCountry map[string]string // zone -> ISO 3166 code
	countryName map[string]string // ISO 3166 code -> name
}

// LoadZoneTables reads zone.tab (or zone1970.tab) and iso3166.tab from fsys.
func LoadZoneTables(fsys fs.FS) (*ZoneTables, error) {
	zt := &ZoneTables{
		zoneCountry: make(map[string]string),
		countryName: make(map[string]string),
	}

	var loaded bool
	for _, name := range []string{"zone.tab", "zone1970.tab"} {
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		eachRow(data, func(cols []string) {
			if len(cols) < 3 {
				return
			}
			code, _, _ := strings.Cut(cols[0], ",")
			if _, seen := zt.zoneCountry[cols[2]]; !seen {
				zt.zoneCountry[cols[2]] = code
			}
		})
		loaded = true
	}
	if !loaded {
		return nil, fmt.Errorf("no zone table found: %w", fs.ErrNotExist)
	}

	data, err := fs.ReadFile(fsys, "iso3166.tab")
	if err != nil {
		return nil, fmt.Errorf("read iso3166.tab: %w", err)
	}
	eachRow(data, func(cols []string) {
		if len(cols) >= 2 {
			zt.countryName[cols[0]] = cols[1]
		}
	})
	return zt, nil
}

// CountryForZone returns the country name for an IANA zone.
func (zt *ZoneTables) CountryForZone(zone string) (string, bool) {
	if zt == nil || zone == "" {
		return "", false
	}
	code, ok := zt.zoneCountry[zone]
	if !ok {
		return "", false
	}
	name, ok := zt.countryName[code]
	return name, ok
}

func eachRow(data []byte, fn func(cols []string)) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(strings.Split(line, "\t"))
	}
}

// LocalZoneName guesses the IANA name of the local zone from TZ, then the
// /etc/localtime symlink, then /etc/timezone.
func LocalZoneName() string {
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" && !filepath.IsAbs(tz) {
		return tz
	}
	if target, err := os.Readlink("/etc/localtime"); err == nil {
		if _, zone, ok := strings.Cut(target, "zoneinfo/"); ok {
			return zone
		}
	}
	if data, err := os.ReadFile("/etc/timezone"); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// ZoneDir returns $ZONEINFO when it names a directory, else DefaultZoneDir.
func ZoneDir() string {
	if dir := os.Getenv("ZONEINFO"); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return DefaultZoneDir
}

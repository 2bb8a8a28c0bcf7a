/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package session

import (
	"fmt"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
)

// exifTimeLayout is the timestamp format mandated by the EXIF standard.
const exifTimeLayout = "2006:01:02 15:04:05"

// exifCaptureTime extracts DateTimeOriginal (falling back to DateTime) from
// the file's EXIF block. Files without EXIF, or without a timestamp tag,
// return an error and the caller treats the capture time as unknown.
func exifCaptureTime(path string) (time.Time, error) {
	rawExif, err := exif.SearchFileAndExtractExif(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("no EXIF data: %w", err)
	}
	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse EXIF: %w", err)
	}

	var fallback string
	for _, tag := range tags {
		switch tag.TagName {
		case "DateTimeOriginal":
			if ts, err := time.Parse(exifTimeLayout, tag.FormattedFirst); err == nil {
				return ts, nil
			}
		case "DateTime":
			fallback = tag.FormattedFirst
		}
	}
	if fallback != "" {
		if ts, err := time.Parse(exifTimeLayout, fallback); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("no usable timestamp tag")
}

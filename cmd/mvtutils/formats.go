package main

import "strings"

func deduceFormat(format, filePath string) string {
	if format == "" && strings.HasSuffix(filePath, ".mbtiles") {
		return "mbtiles"
	}
	if format == "" && strings.Contains(filePath, "{z}") {
		return "xyz"
	}
	if format == "" && (strings.HasSuffix(filePath, ".mvt") || strings.HasSuffix(filePath, ".pbf")) {
		return "mvt"
	}
	return format
}

package main

import (
	"strconv"
	"strings"
	"time"

	"picbox/internal/store"
)

func pictureTableRow(pic store.Picture) []string {
	category := "-"
	if pic.CategoryID != nil {
		category = strconv.FormatInt(*pic.CategoryID, 10)
	}
	episode := "-"
	if pic.Episode != nil {
		episode = strconv.FormatInt(*pic.Episode, 10)
	}
	return []string{
		strconv.FormatInt(pic.ID, 10),
		displayName(pic),
		category,
		episode,
		keywordNames(pic.Keywords),
		pic.CreatedAt.Local().Format(time.DateTime),
	}
}

var pictureTableHeaders = []string{"ID", "Name", "Category", "Episode", "Keywords", "Uploaded"}

var pictureTableAligns = []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft}

func displayName(pic store.Picture) string {
	if pic.OriginalFilename != "" {
		return pic.OriginalFilename
	}
	return pic.Filename
}

func keywordNames(keywords []store.Keyword) string {
	if len(keywords) == 0 {
		return "-"
	}
	names := make([]string, len(keywords))
	for i, kw := range keywords {
		names[i] = kw.Name
	}
	return strings.Join(names, ", ")
}

func parseID(arg string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
}

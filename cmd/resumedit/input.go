package main

import (
	"bufio"
	"io"
	"strings"
)

// bulletMarks are characters people paste in front of bullets.
const bulletMarks = "•-*·"

// sanitizeBullet trims text and strips any leading bullet marks, including
// repeated ones such as "•   • text".
func sanitizeBullet(text string) string {
	text = strings.TrimSpace(text)
	for {
		trimmed := strings.TrimLeft(text, bulletMarks)
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == text {
			return text
		}
		text = trimmed
	}
}

// readBullets reads pasted bullets. A bullet may span several lines, an empty
// line starts the next one and a line reading DONE ends the input. End of
// input also ends the list.
func readBullets(r io.Reader) ([]string, error) {
	var bullets, current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := sanitizeBullet(strings.Join(strings.Fields(strings.Join(current, " ")), " "))
		if text != "" {
			bullets = append(bullets, text)
		}
		current = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "DONE":
			flush()
			return bullets, nil
		case "":
			flush()
		default:
			current = append(current, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return bullets, nil
}

// readLines reads lines up to the first empty line or the end of input.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

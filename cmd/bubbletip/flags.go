package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/bubbletip/internal/geometry"
)

// parseRect parses "x,y,WxH" or "x,y,w,h".
func parseRect(s string) (geometry.Rect, error) {
	parts := strings.Split(s, ",")
	var nums []int
	for _, p := range parts {
		if strings.Contains(p, "x") {
			sz, err := parseSize(p)
			if err != nil {
				return geometry.Rect{}, err
			}
			nums = append(nums, sz.Width, sz.Height)
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
		}
		nums = append(nums, n)
	}
	if len(nums) != 4 {
		return geometry.Rect{}, fmt.Errorf("invalid rect %q: want x,y,w,h", s)
	}
	r := geometry.Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}
	if !r.Valid() {
		return geometry.Rect{}, geometry.ErrInvalidRect
	}
	return r, nil
}

// parseSize parses "WxH".
func parseSize(s string) (geometry.Size, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "x", 2)
	if len(parts) != 2 {
		return geometry.Size{}, fmt.Errorf("invalid size %q: want WxH", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return geometry.Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return geometry.Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return geometry.Size{Width: w, Height: h}, nil
}

// parseInsets parses "t,r,b,l" or a single value for all edges.
func parseInsets(s string) (geometry.Insets, error) {
	if s == "" {
		return geometry.Insets{}, nil
	}
	parts := strings.Split(s, ",")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geometry.Insets{}, fmt.Errorf("invalid insets %q: %w", s, err)
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 1:
		return geometry.Insets{Top: nums[0], Right: nums[0], Bottom: nums[0], Left: nums[0]}, nil
	case 4:
		return geometry.Insets{Top: nums[0], Right: nums[1], Bottom: nums[2], Left: nums[3]}, nil
	default:
		return geometry.Insets{}, fmt.Errorf("invalid insets %q: want one value or t,r,b,l", s)
	}
}

func parseDirection(s string) (geometry.TextDirection, error) {
	switch s {
	case "ltr":
		return geometry.DirectionLTR, nil
	case "rtl":
		return geometry.DirectionRTL, nil
	default:
		return geometry.DirectionLTR, fmt.Errorf("invalid direction %q: want ltr or rtl", s)
	}
}

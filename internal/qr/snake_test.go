package qr

import "testing"

func TestSnakeVisitsExactlyTheDataModules(t *testing.T) {
	for version := VersionMin; version <= VersionMax; version++ {
		expected := 8*NCodewords(version) + NRemainderBits(version)
		snake := NewSnake(version)
		seen := map[[2]int]bool{}
		count := 0
		for {
			x, y, ok := snake.Next()
			if !ok {
				break
			}
			count++
			if seen[[2]int{x, y}] {
				t.Fatalf("version %d: position (%d, %d) visited twice", version, x, y)
			}
			seen[[2]int{x, y}] = true
			if x == 6 {
				t.Fatalf("version %d: snake entered the vertical timing column at (%d, %d)", version, x, y)
			}
		}
		if count != expected {
			t.Errorf("version %d: snake visited %d modules, want %d", version, count, expected)
		}
	}
}

func TestSnakeSkipsFunctionalModules(t *testing.T) {
	for _, version := range []int{1, 7, 14, 40} {
		snake := NewSnake(version)
		probe := NewSnake(version)
		for {
			x, y, ok := snake.Next()
			if !ok {
				break
			}
			if probe.marked(x, y) {
				t.Fatalf("version %d: snake visited functional module (%d, %d)", version, x, y)
			}
		}
	}
}

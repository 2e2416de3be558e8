package searching

import "github.com/awmpietro/algoviz/internal/step"

// The string matchers run on a fixed sample text and pattern with a single
// match at offset 10.
const (
	SampleText    = "ABABDABACDABABCABAB"
	SamplePattern = "ABABCABAB"
)

const (
	rkBase    = 256
	rkModulus = 101
)

// KMP emits a CheckIndex for every text character comparison and a Found at
// the start of every match.
func KMP(text, pattern string) step.Sequence {
	rec := step.NewRecorder("kmp")
	m := len(pattern)
	if m == 0 || m > len(text) {
		rec.Add(step.NotFound())
		return rec.Sequence()
	}
	lps := prefixTable(pattern)
	found := false
	for i, j := 0, 0; i < len(text); {
		rec.Add(step.CheckIndex(i))
		switch {
		case text[i] == pattern[j]:
			i++
			j++
			if j == m {
				rec.Add(step.Found(i - j))
				found = true
				j = lps[j-1]
			}
		case j != 0:
			j = lps[j-1]
		default:
			i++
		}
	}
	if !found {
		rec.Add(step.NotFound())
	}
	return rec.Sequence()
}

// prefixTable returns, for each prefix of p, the length of its longest proper
// prefix that is also a suffix.
func prefixTable(p string) []int {
	lps := make([]int, len(p))
	for i, n := 1, 0; i < len(p); {
		switch {
		case p[i] == p[n]:
			n++
			lps[i] = n
			i++
		case n != 0:
			n = lps[n-1]
		default:
			i++
		}
	}
	return lps
}

// RabinKarp slides a rolling hash over the text. Every window is announced
// with NarrowRange; characters are only verified on a hash hit.
func RabinKarp(text, pattern string) step.Sequence {
	rec := step.NewRecorder("rabin-karp")
	m, n := len(pattern), len(text)
	if m == 0 || m > n {
		rec.Add(step.NotFound())
		return rec.Sequence()
	}

	h := 1
	for range m - 1 {
		h = (h * rkBase) % rkModulus
	}
	p, t := 0, 0
	for i := range m {
		p = (rkBase*p + int(pattern[i])) % rkModulus
		t = (rkBase*t + int(text[i])) % rkModulus
	}

	found := false
	for i := 0; i <= n-m; i++ {
		rec.Add(step.NarrowRange(i, i+m-1))
		if p == t {
			match := true
			for j := range m {
				rec.Add(step.CheckIndex(i + j))
				if text[i+j] != pattern[j] {
					match = false
					break
				}
			}
			if match {
				rec.Add(step.Found(i))
				found = true
			}
		}
		if i < n-m {
			t = (rkBase*(t-int(text[i])*h) + int(text[i+m])) % rkModulus
			if t < 0 {
				t += rkModulus
			}
		}
	}
	if !found {
		rec.Add(step.NotFound())
	}
	return rec.Sequence()
}

// ZAlgorithm computes the Z array of pattern+"$"+text. Comparisons that land
// in the text are reported in text coordinates.
func ZAlgorithm(text, pattern string) step.Sequence {
	rec := step.NewRecorder("z-algorithm")
	m := len(pattern)
	if m == 0 || m > len(text) {
		rec.Add(step.NotFound())
		return rec.Sequence()
	}

	s := pattern + "$" + text
	n := len(s)
	z := make([]int, n)
	for i, l, r := 1, 0, 0; i < n; i++ {
		if i <= r {
			z[i] = min(r-i+1, z[i-l])
		}
		for i+z[i] < n && s[z[i]] == s[i+z[i]] {
			if pos := i + z[i]; pos > m {
				rec.Add(step.CheckIndex(pos - m - 1))
			}
			z[i]++
		}
		if i+z[i]-1 > r {
			l, r = i, i+z[i]-1
		}
	}

	found := false
	for i := m + 1; i < n; i++ {
		if z[i] == m {
			rec.Add(step.Found(i - m - 1))
			found = true
		}
	}
	if !found {
		rec.Add(step.NotFound())
	}
	return rec.Sequence()
}

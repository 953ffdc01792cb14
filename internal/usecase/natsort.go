package usecase

// natCompare compara en orden natural: las secuencias de dígitos se comparan
// por valor ("Option 2" < "Option 10"). Sensible a mayúsculas.
func natCompare(a, b string) int {
	ai, bi := 0, 0
	for {
		for ai < len(a) && isSpace(a[ai]) {
			ai++
		}
		for bi < len(b) && isSpace(b[bi]) {
			bi++
		}
		if ai >= len(a) || bi >= len(b) {
			break
		}
		ca, cb := a[ai], b[bi]
		if isDigit(ca) && isDigit(cb) {
			ae, be := ai, bi
			for ae < len(a) && isDigit(a[ae]) {
				ae++
			}
			for be < len(b) && isDigit(b[be]) {
				be++
			}
			var r int
			// con cero a la izquierda se compara como fracción
			if ca == '0' || cb == '0' {
				r = compareLeft(a[ai:ae], b[bi:be])
			} else {
				r = compareRight(a[ai:ae], b[bi:be])
			}
			if r != 0 {
				return r
			}
			ai, bi = ae, be
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		ai++
		bi++
	}
	ra, rb := len(a)-ai, len(b)-bi
	switch {
	case ra == 0 && rb == 0:
		return 0
	case ra == 0:
		return -1
	default:
		return 1
	}
}

func compareRight(x, y string) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func compareLeft(x, y string) int {
	for i := 0; i < len(x) && i < len(y); i++ {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

package freegroup

// Hom is a homomorphism between free groups fixed by the images of the
// source generators; generator i maps to Images[i-1].
type Hom struct {
	Images []Word
}

// Image returns the reduced image of w. Generators without an image map to
// themselves.
func (h Hom) Image(w Word) Word {
	out := One()
	for _, s := range w.syl {
		img := Gen(s.Gen)
		if s.Gen >= 1 && s.Gen <= len(h.Images) {
			img = h.Images[s.Gen-1]
		}
		out = out.Mul(img.Pow(s.Exp))
	}
	return out
}

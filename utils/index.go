package utils

type Index []int

func (I Index) Copy() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	return
}

package docimport

import "fmt"

const cleanupSystemPrompt = `Te egy dokumentum-tisztító asszisztens vagy. A bemenet nyers, gyakran OCR-ből
származó tankönyvi szöveg. Feladatod a szöveg megtisztítása és strukturált
Markdown formázása.

Szabályok:
- Távolítsd el az oldalszámokat, fejléceket, lábléceket, e-mail címeket és URL-eket.
- Javítsd az összetapadt szavakat és a sortörési hibákat.
- A címeket Markdown címsorként (#, ##) formázd.
- A matematikai képleteket $...$ jelölés közé tedd.
- A szöveg tartalmát ne változtasd meg és ne egészítsd ki.
- Csak a megtisztított szöveget add vissza, magyarázat nélkül.`

func cleanupPrompt(text string) string {
	return fmt.Sprintf("Tisztítsd meg és formázd a következő szöveget:\n\n%s", text)
}

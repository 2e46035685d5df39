// Package generation builds the prompts sent to the generative model and turns its
// free-form answers back into routines and challenges.
package generation

import (
	"fmt"
	"strings"

	"fitchallenge/internal/domain"
)

const routineSchema = `{
  "nombre_rutina": string,
  "descripcion": text,
  "nivel": string,
  "objetivo": string,
  "sesiones": [
    {
      "dia": string,
      "musculos": string,
      "ejercicios": [
        { "idEjercicio": string, "series": int, "repeticiones": int (debe ser un número o un rango de números), "descanso": int, "descripcion": text (es una descripción de como hacer el ejercicio), "peso": int (es un peso sugerido para el ejercicio), "terminado": false (Este no lo toques siempre sera false)}
      ]
    }
  ]
}`

const challengeSchema = `{
  "nombre_reto": string,
  "descripcion": text,
  "nivel": string,
  "objetivo": string,
  "img": string,
  "sesiones": [
    {
      "dia": string,
      "ejercicios": [
        { "nombre": string, "series": int, "repeticiones": int, "descanso": int, "descripcion": text, "peso": int, "terminado": false }
      ]
    }
  ]
}`

// BuildRoutinePrompt asks for a personalised seven-day routine built only from the
// given catalog.
func BuildRoutinePrompt(user domain.TrainingAttributes, catalog []domain.Exercise) string {
	var b strings.Builder

	b.WriteString("Genera una rutina personalizada basada en los siguientes datos del usuario:\n")
	fmt.Fprintf(&b, "- Nombre: %s %s\n", user.Name, user.Surname)
	writeAttributes(&b, user)

	b.WriteString("\nEjercicios disponibles:\n")
	writeCatalog(&b, catalog)

	b.WriteString("\n")
	b.WriteString("Si la ubicación del usuario dice 'casa' solo usa ejercicios que estén en casa, pero si dice 'gimnasio' puedes usar ejercicios de casa y de gimnasio, preferiblemente de gimnasio.\n")
	b.WriteString("Procura que la rutina tenga sentido: no pongas el mismo grupo muscular dos días seguidos ni todos los músculos en un solo día, siempre de acuerdo con los días y el tiempo disponibles del usuario.\n")
	fmt.Fprintf(&b, "Crea los %d días de la semana pero solo pon ejercicios en la cantidad de días disponibles del usuario; en los demás días, en el apartado de músculos a trabajar, pon únicamente %s y deja la lista de ejercicios vacía.\n", domain.DaysPerWeek, domain.RestDayLabel)
	b.WriteString("El descanso es en segundos.\n")
	b.WriteString("El campo \"terminado\" siempre debe ser false.\n")
	b.WriteString("La respuesta debe ser exclusivamente un JSON válido con esta estructura:\n")
	b.WriteString(routineSchema)
	b.WriteString("\n\nNo incluyas texto adicional fuera del JSON. Usa únicamente valores numéricos para \"repeticiones\", como un rango de repeticiones (por ejemplo, \"8-12\"); nunca palabras ni valores nulos.\n")

	return b.String()
}

// BuildChallengePrompt asks for a challenge whose exercise names match the catalog
// exactly and whose name differs from every existing challenge.
func BuildChallengePrompt(user domain.TrainingAttributes, catalog []domain.Exercise, existing []string) string {
	var b strings.Builder

	b.WriteString("Genera un reto personalizado basado en los siguientes datos del usuario:\n")
	writeAttributes(&b, user)

	b.WriteString("\nEjercicios disponibles:\n")
	writeCatalog(&b, catalog)

	b.WriteString("\n")
	b.WriteString("Si la ubicación del usuario dice 'casa', solo usa ejercicios que se puedan hacer en casa. Si dice 'gimnasio', puedes usar ejercicios de casa y de gimnasio, pero preferentemente de gimnasio.\n")
	b.WriteString("Asegúrate de crear un reto adecuado a la cantidad de días y tiempo disponibles del usuario. No pongas ejercicios de forma arbitraria, busca que tengan sentido en la rutina; no repitas el mismo grupo muscular en días seguidos.\n")
	b.WriteString("No pongas palabras ni rangos en las repeticiones, siempre pon un número entero, tampoco valores nulos.\n")
	b.WriteString("El descanso es en segundos y el campo \"terminado\" siempre debe ser false.\n")
	b.WriteString("Pon el nombre de cada ejercicio exactamente como está en la lista de ejercicios disponibles.\n")
	b.WriteString("Asegúrate de no ponerle un nombre parecido a los siguientes retos y ponle un nombre que tenga que ver con actividad física:\n")
	for _, name := range existing {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	b.WriteString("\nLa respuesta debe ser exclusivamente un JSON válido con esta estructura:\n")
	b.WriteString(challengeSchema)
	b.WriteString("\n\nNo incluyas texto adicional fuera del JSON.\n")

	return b.String()
}

func writeAttributes(b *strings.Builder, user domain.TrainingAttributes) {
	fmt.Fprintf(b, "- Objetivo: %s\n", user.Goal)
	fmt.Fprintf(b, "- Edad: %s\n", user.Age)
	fmt.Fprintf(b, "- Género: %s\n", user.Gender)
	fmt.Fprintf(b, "- Peso: %s LBS\n", user.Weight)
	fmt.Fprintf(b, "- Altura: %s cm\n", user.Height)
	fmt.Fprintf(b, "- Experiencia: %s\n", user.Experience)
	fmt.Fprintf(b, "- Días disponibles: %s\n", user.AvailableDays)
	fmt.Fprintf(b, "- Ubicación: %s\n", user.Location)
	fmt.Fprintf(b, "- Complicación física: %s\n", user.PhysicalCondition)
	fmt.Fprintf(b, "- Tiempo disponible por sesión: %s minutos\n", user.SessionMinutes)
}

func writeCatalog(b *strings.Builder, catalog []domain.Exercise) {
	for _, ex := range catalog {
		fmt.Fprintf(b, "- %s (ID: %s, Categoría: %s, Ubicación: %s)\n", ex.Name, ex.ID, ex.Category, ex.Location)
	}
}

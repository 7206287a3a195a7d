package quiz

var defaultQuestions = []Question{
	{
		ID:       1,
		Question: "Which data structure best represents the multiverse timeline branching?",
		Options:  []string{"Stack", "Queue", "Tree", "Graph"},
		Answer:   "Tree",
	},
	{
		ID:       2,
		Question: "What is the time complexity to find the 'Time Stone' in a sorted array using Binary Search?",
		Options:  []string{"O(n)", "O(log n)", "O(1)", "O(n log n)"},
		Answer:   "O(log n)",
	},
	{
		ID:       3,
		Question: "If Iron Man's suit OS uses LIFO (Last In First Out), which structure is it using?",
		Options:  []string{"Queue", "Stack", "Array", "Linked List"},
		Answer:   "Stack",
	},
	{
		ID:       4,
		Question: "Which sorting algorithm is inevitably linked to the 'Divide and Conquer' strategy used by the Avengers?",
		Options:  []string{"Bubble Sort", "Merge Sort", "Insertion Sort", "Selection Sort"},
		Answer:   "Merge Sort",
	},
	{
		ID:       5,
		Question: "In Python, which keyword is used to create an anonymous function (like a stealth mission)?",
		Options:  []string{"def", "lambda", "anon", "func"},
		Answer:   "lambda",
	},
	{
		ID:       6,
		Question: "Which data structure best represents the Avengers' fully interconnected communication system?",
		Options:  []string{"Array", "Stack", "Queue", "Graph"},
		Answer:   "Graph",
	},
	{
		ID:       7,
		Question: "Which OOPS concept allows Thor's hammer to behave differently for different Avengers?",
		Options:  []string{"Inheritance", "Encapsulation", "Polymorphism", "Abstraction"},
		Answer:   "Polymorphism",
	},
	{
		ID:       8,
		Question: "Hiding Hulk's internal rage mechanics and exposing only controlled strength represents which OOPS principle?",
		Options:  []string{"Abstraction", "Encapsulation", "Inheritance", "Polymorphism"},
		Answer:   "Encapsulation",
	},
	{
		ID:       9,
		Question: "Doctor Strange explores all possible timelines using recursion. Which traversal technique best fits this?",
		Options:  []string{"BFS", "DFS", "Binary Search", "Linear Search"},
		Answer:   "DFS",
	},
	{
		ID:       10,
		Question: "Nick Fury creates an abstract base class 'Avenger' that enforces fight() for all heroes. This demonstrates?",
		Options:  []string{"Encapsulation", "Inheritance", "Abstraction", "Overloading"},
		Answer:   "Abstraction",
	},
}
